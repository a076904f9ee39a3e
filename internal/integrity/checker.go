// Package integrity provides the existence checks every write path must
// run before persisting a record that embeds foreign ids. The store
// enforces no constraints of its own.
package integrity

import (
	"context"
	"errors"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/repository"
)

// Checker answers point existence questions against the entity tables.
// Checks are read-only; a failed check must abort the caller's write.
type Checker struct {
	users        *repository.Users
	competencies *repository.Competencies
	locations    *repository.Locations
}

// NewChecker creates a Checker over the given repositories.
func NewChecker(users *repository.Users, competencies *repository.Competencies, locations *repository.Locations) *Checker {
	return &Checker{
		users:        users,
		competencies: competencies,
		locations:    locations,
	}
}

// UserExists reports whether a user with the given id exists.
func (c *Checker) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := c.users.Get(ctx, id)
	return exists(err)
}

// CompetencyExists reports whether a competency with the given id exists.
func (c *Checker) CompetencyExists(ctx context.Context, id string) (bool, error) {
	_, err := c.competencies.Get(ctx, id)
	return exists(err)
}

// TrackingLocationExists reports whether a tracking location with the
// given id exists.
func (c *Checker) TrackingLocationExists(ctx context.Context, id string) (bool, error) {
	_, err := c.locations.Get(ctx, id)
	return exists(err)
}

func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// RequireUser returns a ReferenceError naming the field when the user
// is absent.
func (c *Checker) RequireUser(ctx context.Context, field, id string) error {
	ok, err := c.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &model.ReferenceError{Field: field, ID: id}
	}
	return nil
}

// RequireCompetency returns a ReferenceError naming the field when the
// competency is absent.
func (c *Checker) RequireCompetency(ctx context.Context, field, id string) error {
	ok, err := c.CompetencyExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &model.ReferenceError{Field: field, ID: id}
	}
	return nil
}

// RequireTrackingLocation returns a ReferenceError naming the field
// when the tracking location is absent.
func (c *Checker) RequireTrackingLocation(ctx context.Context, field, id string) error {
	ok, err := c.TrackingLocationExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &model.ReferenceError{Field: field, ID: id}
	}
	return nil
}
