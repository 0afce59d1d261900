package service

import (
	"context"

	"travelog/internal/apperr"
	"travelog/internal/entity"
	"travelog/internal/model"
)

// TripService 旅行相关的业务逻辑
type TripService struct {
	repo model.Repository
}

// NewTripService 创建旅行服务实例
func NewTripService(repo model.Repository) *TripService {
	return &TripService{repo: repo}
}

// CreateTrip creates a trip under the given owner. An omitted status
// defaults to PLANNING.
func (s *TripService) CreateTrip(ctx context.Context, userID uint, req entity.TripCreateRequest) (*entity.DbTrip, error) {
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, apperr.ErrInvalidInput.WithMessage("end date must not be before start date")
	}

	status := entity.TripStatusPlanning
	if req.Status != "" {
		parsed, ok := entity.ParseTripStatus(req.Status)
		if !ok {
			return nil, apperr.ErrInvalidInput.WithMessage("unknown trip status: " + req.Status)
		}
		status = parsed
	}

	trip := &entity.DbTrip{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
		Destination: req.Destination,
		Budget:      req.Budget,
		UserID:      userID,
	}
	if err := s.repo.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns the owner's trips matching the filters, projected for
// the list view.
func (s *TripService) ListTrips(ctx context.Context, userID uint, cond *entity.TripSearchCondition, params *entity.BaseParams) ([]entity.TripListItem, *entity.Meta, error) {
	trips, meta, err := s.repo.SearchTrips(ctx, userID, cond, params)
	if err != nil {
		return nil, nil, err
	}
	items := make([]entity.TripListItem, 0, len(trips))
	for i := range trips {
		items = append(items, entity.MakeTripListItem(&trips[i]))
	}
	return items, meta, nil
}

// GetTrip returns the detail view of one owned trip, including the travel
// log aggregates.
func (s *TripService) GetTrip(ctx context.Context, userID, tripID uint) (entity.TripDetail, error) {
	trip, err := getOwnedTrip(ctx, s.repo, userID, tripID)
	if err != nil {
		return entity.TripDetail{}, err
	}

	stats, err := s.tripStats(ctx, trip.ID)
	if err != nil {
		return entity.TripDetail{}, err
	}
	return entity.MakeTripDetail(trip, stats), nil
}

func (s *TripService) tripStats(ctx context.Context, tripID uint) (entity.TripStats, error) {
	count, err := s.repo.CountTravelLogsByTrip(ctx, tripID)
	if err != nil {
		return entity.TripStats{}, err
	}
	avg, err := s.repo.AverageRatingByTrip(ctx, tripID)
	if err != nil {
		return entity.TripStats{}, err
	}
	total, err := s.repo.TotalExpensesByTrip(ctx, tripID)
	if err != nil {
		return entity.TripStats{}, err
	}
	return entity.TripStats{LogCount: count, AverageRating: avg, TotalExpenses: total}, nil
}

// UserTravelStats aggregates across every trip the user owns.
func (s *TripService) UserTravelStats(ctx context.Context, userID uint) (entity.TripStats, error) {
	count, err := s.repo.CountTravelLogsByUser(ctx, userID)
	if err != nil {
		return entity.TripStats{}, err
	}
	avg, err := s.repo.AverageRatingByUser(ctx, userID)
	if err != nil {
		return entity.TripStats{}, err
	}
	total, err := s.repo.TotalExpensesByUser(ctx, userID)
	if err != nil {
		return entity.TripStats{}, err
	}
	return entity.TripStats{LogCount: count, AverageRating: avg, TotalExpenses: total}, nil
}
