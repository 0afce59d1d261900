package service

import (
	"context"
	"errors"

	"travelog/internal/apperr"
	"travelog/internal/entity"
	"travelog/internal/model"

	"gorm.io/gorm"
)

// getOwnedTrip loads a trip and enforces the caller's ownership. A trip that
// does not exist maps to TRIP_NOT_FOUND; one owned by another user maps to
// TRIP_ACCESS_DENIED, which deliberately reveals that the id exists.
func getOwnedTrip(ctx context.Context, repo model.Repository, userID, tripID uint) (*entity.DbTrip, error) {
	trip, err := repo.GetTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTripNotFound
		}
		return nil, err
	}
	if trip.UserID != userID {
		return nil, apperr.ErrTripAccessDenied
	}
	return trip, nil
}

// getOwnedTravelLog loads a travel log with its trip and enforces ownership
// through the trip. The not-found and access-denied mapping mirrors
// getOwnedTrip.
func getOwnedTravelLog(ctx context.Context, repo model.Repository, userID, logID uint) (*entity.DbTravelLog, error) {
	log, err := repo.GetTravelLogByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTravelLogNotFound
		}
		return nil, err
	}
	if log.Trip == nil || log.Trip.UserID != userID {
		return nil, apperr.ErrTravelLogAccessDenied
	}
	return log, nil
}
