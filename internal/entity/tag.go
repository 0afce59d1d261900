package entity

import (
	"strings"
	"time"
)

// TagCategory 标签分类（封闭集合）
type TagCategory string

const (
	TagCategoryLocation      TagCategory = "LOCATION"
	TagCategoryActivity      TagCategory = "ACTIVITY"
	TagCategoryFood          TagCategory = "FOOD"
	TagCategoryTransport     TagCategory = "TRANSPORT"
	TagCategoryAccommodation TagCategory = "ACCOMMODATION"
	TagCategoryWeather       TagCategory = "WEATHER"
	TagCategoryMood          TagCategory = "MOOD"
	TagCategoryPeople        TagCategory = "PEOPLE"
	TagCategoryCulture       TagCategory = "CULTURE"
	TagCategoryNature        TagCategory = "NATURE"
	TagCategoryCity          TagCategory = "CITY"
	TagCategoryCountryside   TagCategory = "COUNTRYSIDE"
	TagCategoryMountain      TagCategory = "MOUNTAIN"
	TagCategoryBeach         TagCategory = "BEACH"
	TagCategoryMuseum        TagCategory = "MUSEUM"
	TagCategoryShopping      TagCategory = "SHOPPING"
	TagCategoryNightlife     TagCategory = "NIGHTLIFE"
	TagCategoryOther         TagCategory = "OTHER"
)

var tagCategories = []TagCategory{
	TagCategoryLocation, TagCategoryActivity, TagCategoryFood,
	TagCategoryTransport, TagCategoryAccommodation, TagCategoryWeather,
	TagCategoryMood, TagCategoryPeople, TagCategoryCulture,
	TagCategoryNature, TagCategoryCity, TagCategoryCountryside,
	TagCategoryMountain, TagCategoryBeach, TagCategoryMuseum,
	TagCategoryShopping, TagCategoryNightlife, TagCategoryOther,
}

var tagCategoryDescriptions = map[TagCategory]string{
	TagCategoryLocation:      "장소",
	TagCategoryActivity:      "활동",
	TagCategoryFood:          "음식",
	TagCategoryTransport:     "교통",
	TagCategoryAccommodation: "숙박",
	TagCategoryWeather:       "날씨",
	TagCategoryMood:          "기분",
	TagCategoryPeople:        "사람",
	TagCategoryCulture:       "문화",
	TagCategoryNature:        "자연",
	TagCategoryCity:          "도시",
	TagCategoryCountryside:   "시골",
	TagCategoryMountain:      "산",
	TagCategoryBeach:         "해변",
	TagCategoryMuseum:        "박물관",
	TagCategoryShopping:      "쇼핑",
	TagCategoryNightlife:     "야간생활",
	TagCategoryOther:         "기타",
}

// AllTagCategories returns the closed category set in declaration order.
func AllTagCategories() []TagCategory {
	out := make([]TagCategory, len(tagCategories))
	copy(out, tagCategories)
	return out
}

// Description returns the human label shown in category pickers.
func (c TagCategory) Description() string {
	if desc, ok := tagCategoryDescriptions[c]; ok {
		return desc
	}
	return string(c)
}

// LookupTagCategory normalises a raw category. Unknown values yield
// ("", false) so callers can reject them.
func LookupTagCategory(raw string) (TagCategory, bool) {
	candidate := TagCategory(strings.ToUpper(strings.TrimSpace(raw)))
	for _, c := range tagCategories {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// DbTag is a persisted hashtag. Tags are shared across users; the name is
// globally unique.
type DbTag struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Name        string      `gorm:"column:name;type:varchar(50);uniqueIndex;not null" json:"name"`
	Category    TagCategory `gorm:"column:category;type:varchar(30);not null" json:"category"`
	Color       string      `gorm:"column:color;type:varchar(7)" json:"color"`
	Description string      `gorm:"column:description;type:varchar(200)" json:"description"`
}

// TableName 指定表名
func (DbTag) TableName() string {
	return "tags"
}

// DbTravelLogTag links a travel log to a tag. The row carries its own id so
// deletes cascade per link rather than per pair.
type DbTravelLogTag struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	TravelLogID uint      `gorm:"column:travel_log_id;index;not null" json:"travelLogId"`
	TagID       uint      `gorm:"column:tag_id;index;not null" json:"tagId"`
}

// TableName 指定表名
func (DbTravelLogTag) TableName() string {
	return "travel_log_tags"
}

type TagCreateRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Category    string `json:"category" binding:"required"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Description string `json:"description" binding:"max=200"`
}

const defaultTagColor = "#6c757d"

// TagResponse 标签的对外表示
type TagResponse struct {
	ID       uint        `json:"id"`
	Name     string      `json:"name"`
	Category TagCategory `json:"category"`
	Color    string      `json:"color"`
}

// MakeTagResponse maps a tag entity to its client projection, filling in the
// default badge color when the tag has none.
func MakeTagResponse(tag *DbTag) TagResponse {
	if tag == nil {
		return TagResponse{}
	}
	color := tag.Color
	if color == "" {
		color = defaultTagColor
	}
	return TagResponse{
		ID:       tag.ID,
		Name:     tag.Name,
		Category: tag.Category,
		Color:    color,
	}
}

// MakeTagResponses maps a slice of tags, preserving order.
func MakeTagResponses(tags []DbTag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, MakeTagResponse(&tags[i]))
	}
	return out
}
