package api

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"travelog/internal/apperr"
	"travelog/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// OK 返回统一格式的成功响应
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, entity.Response{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// OKPaged 返回带分页元信息的成功响应
func OKPaged(c *gin.Context, message string, items interface{}, meta *entity.Meta) {
	OK(c, http.StatusOK, message, entity.PagedData{Items: items, Meta: meta})
}

// Fail 返回统一格式的业务错误响应
func Fail(c *gin.Context, appErr *apperr.Error) {
	c.JSON(appErr.Status, entity.Response{
		Success:   false,
		Message:   appErr.Message,
		ErrorCode: appErr.Code,
		Timestamp: time.Now().UTC(),
	})
}

// HandleError translates a service error into a response. Unexpected errors
// are logged and reported as a 500 without leaking detail.
func HandleError(c *gin.Context, err error) {
	if appErr, ok := apperr.From(err); ok {
		Fail(c, appErr)
		return
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("unhandled error")
	Fail(c, apperr.ErrInternal)
}

// BindError translates a binding failure. Validator errors are aggregated
// per field so the client gets every rejected field in one round trip.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]entity.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, entity.ValidationError{
				Field:         lowerFirst(fe.Field()),
				Message:       validationMessage(fe),
				RejectedValue: fe.Value(),
			})
		}
		c.JSON(http.StatusBadRequest, entity.Response{
			Success:   false,
			Message:   "validation failed",
			ErrorCode: apperr.ErrValidation.Code,
			Timestamp: time.Now().UTC(),
			Data:      details,
		})
		return
	}
	Fail(c, apperr.ErrInvalidInput)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short or too small (min " + fe.Param() + ")"
	case "max":
		return "is too long or too large (max " + fe.Param() + ")"
	case "alphanumunder":
		return "may only contain letters, digits and underscores"
	case "hexcolor":
		return "must be a hex color like #aabbcc"
	default:
		return "is invalid"
	}
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return string(name[0]|0x20) + name[1:]
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("alphanumunder", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}
