package association

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/praxislab/comptrack/internal/model"
)

// maxIDAttempts bounds the generate-and-check loop for location ids.
// Without a cap an adversarially dense id space would loop forever.
const maxIDAttempts = 16

// locationIDDigits sizes the numeric id space.
const locationIDDigits = 8

var errIDSpaceExhausted = errors.New("location id generation attempts exhausted")

// ResolveOrCreateLocationID returns the id already registered for the
// exact location name, enabling idempotent create-or-reuse. When no
// location has the name, a fresh random numeric id is generated and
// checked against existing ids until one is free, bounded by
// maxIDAttempts.
func (r *Resolver) ResolveOrCreateLocationID(ctx context.Context, locationName string) (string, error) {
	if locationName == "" {
		return "", &model.InputError{Field: "LocationName", Reason: "must not be empty"}
	}

	existing, err := r.locations.FindByName(ctx, locationName)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return existing[0].LocationID, nil
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := r.newID()
		taken, err := r.checker.TrackingLocationExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		r.logger.Warn("location id collision", "candidate", candidate, "attempt", attempt+1)
	}

	return "", fmt.Errorf("%w after %d tries: %w", model.ErrStore, maxIDAttempts, errIDSpaceExhausted)
}

// CreateTrackingLocation validates every competency reference, resolves
// or allocates the location id, and writes the record. Calling it twice
// with the same name yields the same id.
func (r *Resolver) CreateTrackingLocation(ctx context.Context, locationName string, competencyIDs []string) (*model.TrackingLocation, error) {
	if len(competencyIDs) == 0 {
		return nil, &model.InputError{Field: "CompetencyIds", Reason: "must not be empty"}
	}

	for _, id := range competencyIDs {
		if err := r.checker.RequireCompetency(ctx, "CompetencyIds", id); err != nil {
			return nil, err
		}
	}

	locationID, err := r.ResolveOrCreateLocationID(ctx, locationName)
	if err != nil {
		return nil, err
	}

	loc := &model.TrackingLocation{
		LocationID:    locationID,
		LocationName:  locationName,
		CompetencyIDs: competencyIDs,
	}
	if err := r.locations.Put(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func randomNumericID() string {
	max := 1
	for i := 0; i < locationIDDigits; i++ {
		max *= 10
	}
	return fmt.Sprintf("%0*d", locationIDDigits, rand.Intn(max))
}
