package service

import (
	"context"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/repository"
)

// Scales serves the static evaluation-scale reference rows.
type Scales struct {
	scales *repository.Scales
}

// NewScales creates a Scales service.
func NewScales(scales *repository.Scales) *Scales {
	return &Scales{scales: scales}
}

// Put stores a reference row.
func (s *Scales) Put(ctx context.Context, scale *model.EvaluationScale) error {
	if !scale.EvaluationScore.Valid() {
		return &model.InputError{Field: "EvaluationScore", Reason: "must be between 0 and 4"}
	}
	return s.scales.Put(ctx, scale)
}

// Get fetches the reference row for one score.
func (s *Scales) Get(ctx context.Context, score model.EvaluationScore) (*model.EvaluationScale, error) {
	return s.scales.Get(ctx, score)
}

// All returns every reference row.
func (s *Scales) All(ctx context.Context) ([]model.EvaluationScale, error) {
	return s.scales.All(ctx)
}
