// Package association creates and resolves the many-to-many links the
// key-value store cannot express natively: mentor to students and user
// to tracking locations.
package association

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/integrity"
	"github.com/praxislab/comptrack/internal/logger"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/repository"
	"github.com/praxislab/comptrack/internal/store"
)

// defaultFanOut caps concurrent point lookups during fan-out reads.
const defaultFanOut = 8

// maxTransactItems is the DynamoDB TransactWriteItems cap.
const maxTransactItems = 100

// Resolver owns association writes, reverse lookups, and tracking
// location id allocation.
type Resolver struct {
	users        *repository.Users
	locations    *repository.Locations
	associations *repository.Associations
	checker      *integrity.Checker
	store        *store.Store
	index        *inverseIndex
	logger       *logger.Logger
	fanOut       int
	newID        func() string
}

// NewResolver creates a Resolver. indexTable holds the materialized
// inverse association index. fanOut caps concurrent point lookups; zero
// selects the default.
func NewResolver(
	users *repository.Users,
	locations *repository.Locations,
	associations *repository.Associations,
	checker *integrity.Checker,
	s *store.Store,
	indexTable string,
	l *logger.Logger,
	fanOut int,
) *Resolver {
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}
	return &Resolver{
		users:        users,
		locations:    locations,
		associations: associations,
		checker:      checker,
		store:        s,
		index:        &inverseIndex{store: s, table: indexTable},
		logger:       l,
		fanOut:       fanOut,
		newID:        randomNumericID,
	}
}

// Create writes the association record for a user, dispatching on the
// user's role: mentors get StudentIds, everyone else gets LocationIds.
// Every related id is checked for existence before anything is written.
// The new record replaces any prior association wholesale, so repeated
// calls with the same input are safe to retry.
func (r *Resolver) Create(ctx context.Context, userID string, relatedIDs []string) (*model.UserTrackingAssociation, error) {
	if userID == "" {
		return nil, &model.InputError{Field: "UserId", Reason: "must not be empty"}
	}
	if len(relatedIDs) == 0 {
		return nil, &model.InputError{Field: "RelatedIds", Reason: "must not be empty"}
	}

	user, err := r.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	assoc := &model.UserTrackingAssociation{UserID: userID}
	kind := kindLocation
	if user.Role.IsMentor() {
		kind = kindStudent
		for _, id := range relatedIDs {
			if err := r.checker.RequireUser(ctx, "StudentIds", id); err != nil {
				return nil, err
			}
		}
		assoc.StudentIDs = relatedIDs
	} else {
		for _, id := range relatedIDs {
			if err := r.checker.RequireTrackingLocation(ctx, "LocationIds", id); err != nil {
				return nil, err
			}
		}
		assoc.LocationIDs = relatedIDs
	}

	items, err := r.replacementWrite(ctx, assoc, kind, relatedIDs)
	if err != nil {
		return nil, err
	}
	if err := r.transactChunks(ctx, items); err != nil {
		return nil, err
	}

	r.logger.Info("association written",
		"userId", userID,
		"kind", kind,
		"related", len(relatedIDs),
	)
	return assoc, nil
}

// replacementWrite builds the transaction replacing the forward record
// and reconciling the inverse index: rows for dropped ids are deleted,
// rows for current ids written. Prior rows of either kind are cleared
// so a role change cannot strand index entries.
func (r *Resolver) replacementWrite(ctx context.Context, assoc *model.UserTrackingAssociation, kind string, relatedIDs []string) ([]types.TransactWriteItem, error) {
	forward, err := r.associations.MarshalRecord(assoc)
	if err != nil {
		return nil, err
	}

	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName: aws.String(r.associations.Table()),
			Item:      forward,
		},
	}}

	current := make(map[string]bool, len(relatedIDs))
	for _, id := range relatedIDs {
		current[id] = true
		items = append(items, r.index.putRecord(kind, id, assoc.UserID))
	}

	prior, err := r.associations.Get(ctx, assoc.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return items, nil
	}
	if err != nil {
		return nil, err
	}

	for _, id := range prior.StudentIDs {
		if kind != kindStudent || !current[id] {
			items = append(items, r.index.deleteRecord(kindStudent, id, assoc.UserID))
		}
	}
	for _, id := range prior.LocationIDs {
		if kind != kindLocation || !current[id] {
			items = append(items, r.index.deleteRecord(kindLocation, id, assoc.UserID))
		}
	}

	return items, nil
}

// Delete removes a user's association record and its index rows.
func (r *Resolver) Delete(ctx context.Context, userID string) error {
	prior, err := r.associations.Get(ctx, userID)
	if err != nil {
		return err
	}

	var items []types.TransactWriteItem
	items = append(items, types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(r.associations.Table()),
			Key: map[string]types.AttributeValue{
				"UserId": &types.AttributeValueMemberS{Value: userID},
			},
		},
	})
	for _, id := range prior.StudentIDs {
		items = append(items, r.index.deleteRecord(kindStudent, id, userID))
	}
	for _, id := range prior.LocationIDs {
		items = append(items, r.index.deleteRecord(kindLocation, id, userID))
	}

	return r.transactChunks(ctx, items)
}

// transactChunks writes items in transactions of at most
// maxTransactItems. The forward record rides in the first chunk; rows
// beyond the cap are index maintenance only, and the scan fallback
// answers for any gap a partial failure leaves.
func (r *Resolver) transactChunks(ctx context.Context, items []types.TransactWriteItem) error {
	for len(items) > 0 {
		n := len(items)
		if n > maxTransactItems {
			n = maxTransactItems
		}
		if err := r.store.TransactWrite(ctx, items[:n]); err != nil {
			return err
		}
		items = items[n:]
	}
	return nil
}

// StudentsForMentor returns the student users linked to a mentor, in
// StudentIds order. An absent association is ErrNotFound: "no students
// found" is distinct from an association holding an empty list. Ids
// whose user no longer exists are silently dropped.
func (r *Resolver) StudentsForMentor(ctx context.Context, mentorID string) ([]model.User, error) {
	mentor, err := r.users.Get(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.Role.IsMentor() {
		return nil, fmt.Errorf("user %q is not a mentor: %w", mentorID, model.ErrNotFound)
	}

	assoc, err := r.associations.Get(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if assoc.StudentIDs == nil {
		return nil, fmt.Errorf("no students for mentor %q: %w", mentorID, model.ErrNotFound)
	}

	return r.fetchUsers(ctx, assoc.StudentIDs)
}

// MentorsForStudent returns the mentors whose StudentIds contain the
// given student. The inverse index answers this directly; when it has
// no rows the resolver falls back to the reference full scan, so result
// order follows store order and is not guaranteed stable.
func (r *Resolver) MentorsForStudent(ctx context.Context, studentID string) ([]model.User, error) {
	student, err := r.users.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.Role.IsStudent() {
		return nil, fmt.Errorf("user %q is not a student: %w", studentID, model.ErrNotFound)
	}

	ownerIDs, err := r.index.owners(ctx, kindStudent, studentID)
	if err != nil {
		return nil, err
	}
	if len(ownerIDs) == 0 {
		ownerIDs, err = r.scanOwners(ctx, func(a model.UserTrackingAssociation) bool {
			return contains(a.StudentIDs, studentID)
		})
		if err != nil {
			return nil, err
		}
	}

	return r.fetchUsers(ctx, ownerIDs)
}

// UserIDsAtLocation returns the ids of users associated with a tracking
// location.
func (r *Resolver) UserIDsAtLocation(ctx context.Context, locationID string) ([]string, error) {
	return r.ownersAtLocation(ctx, locationID)
}

// UsersAtLocation is the expanded form: full User records instead of
// raw ids. Stale ids are dropped.
func (r *Resolver) UsersAtLocation(ctx context.Context, locationID string) ([]model.User, error) {
	ownerIDs, err := r.ownersAtLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return r.fetchUsers(ctx, ownerIDs)
}

func (r *Resolver) ownersAtLocation(ctx context.Context, locationID string) ([]string, error) {
	ownerIDs, err := r.index.owners(ctx, kindLocation, locationID)
	if err != nil {
		return nil, err
	}
	if len(ownerIDs) > 0 {
		return ownerIDs, nil
	}
	return r.scanOwners(ctx, func(a model.UserTrackingAssociation) bool {
		return contains(a.LocationIDs, locationID)
	})
}

// scanOwners is the reference resolution path: scan every association
// record and keep the owners whose list matches.
func (r *Resolver) scanOwners(ctx context.Context, match func(model.UserTrackingAssociation) bool) ([]string, error) {
	assocs, err := r.associations.All(ctx)
	if err != nil {
		return nil, err
	}

	var owners []string
	for _, a := range assocs {
		if match(a) {
			owners = append(owners, a.UserID)
		}
	}
	return owners, nil
}

// fetchUsers resolves ids to users with bounded concurrent point
// lookups, preserving input order. Missing users are dropped; any store
// failure aborts the whole resolution.
func (r *Resolver) fetchUsers(ctx context.Context, ids []string) ([]model.User, error) {
	results := make([]*model.User, len(ids))
	errs := make(chan error, len(ids))
	sem := make(chan struct{}, r.fanOut)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			user, err := r.users.Get(ctx, id)
			if errors.Is(err, model.ErrNotFound) {
				// Stale reference, tolerated.
				return
			}
			if err != nil {
				errs <- err
				return
			}
			results[i] = user
		}(i, id)
	}

	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(ids))
	for _, u := range results {
		if u != nil {
			users = append(users, *u)
		}
	}
	return users, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
