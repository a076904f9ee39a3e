// Package export flattens evaluations, users, and competencies into the
// tabular evaluation report and ships it to the object sink.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/praxislab/comptrack/internal/logger"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/repository"
)

// defaultFanOut caps rows joined concurrently.
const defaultFanOut = 8

// Pipeline performs the full-table export join.
type Pipeline struct {
	evaluations  *repository.Evaluations
	users        *repository.Users
	competencies *repository.Competencies
	sink         model.ObjectSink
	notifier     model.Notifier
	logger       *logger.Logger
	fanOut       int
}

// NewPipeline creates a Pipeline. notifier may be nil; fanOut of zero
// selects the default.
func NewPipeline(
	evaluations *repository.Evaluations,
	users *repository.Users,
	competencies *repository.Competencies,
	sink model.ObjectSink,
	notifier model.Notifier,
	l *logger.Logger,
	fanOut int,
) *Pipeline {
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}
	return &Pipeline{
		evaluations:  evaluations,
		users:        users,
		competencies: competencies,
		sink:         sink,
		notifier:     notifier,
		logger:       l,
		fanOut:       fanOut,
	}
}

// Run scans every evaluation, joins each against its users and
// competency, and writes the complete CSV to the sink at path. Callers
// never see partial results: any hard store failure aborts the export
// with nothing written. A missing joined entity is not a hard failure;
// that row's joined fields degrade to blank.
func (p *Pipeline) Run(ctx context.Context, path string) error {
	evals, err := p.evaluations.All(ctx)
	if err != nil {
		return err
	}

	rows, err := p.joinAll(ctx, evals)
	if err != nil {
		return err
	}

	body, err := renderCSV(rows)
	if err != nil {
		return err
	}

	if err := p.sink.PutObject(ctx, path, body); err != nil {
		return fmt.Errorf("upload export: %w", err)
	}
	p.logger.Info("export uploaded", "path", path, "rows", len(rows))

	if p.notifier != nil {
		if err := p.notifier.NotifyExport(ctx, path); err != nil {
			return fmt.Errorf("notify export: %w", err)
		}
	}
	return nil
}

// joinAll joins rows concurrently under the fan-out cap, preserving
// scan order.
func (p *Pipeline) joinAll(ctx context.Context, evals []model.Evaluation) ([]Row, error) {
	rows := make([]Row, len(evals))
	errs := make(chan error, len(evals))
	sem := make(chan struct{}, p.fanOut)
	var wg sync.WaitGroup

	for i := range evals {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			row, err := p.joinRow(ctx, &evals[i])
			if err != nil {
				errs <- err
				return
			}
			rows[i] = row
		}(i)
	}

	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}
	return rows, nil
}

// joinRow performs the up-to-three point lookups for one evaluation.
// The lookups are independent and run concurrently.
func (p *Pipeline) joinRow(ctx context.Context, eval *model.Evaluation) (Row, error) {
	date, timeFrame := displayDate(eval.DateEvaluated)
	row := Row{
		TransactionID:   eval.CompetencyIDTimestamp,
		Timestamp:       eval.Timestamp,
		StudentUserID:   eval.UserIDBeingEvaluated,
		DateEvaluated:   date,
		TimeFrame:       timeFrame,
		CompetencyID:    model.CompetencyIDFromTransaction(eval.CompetencyIDTimestamp),
		EvaluationScore: strconv.Itoa(int(eval.EvaluationScore)),
		Evidence:        string(eval.Evidence),
		Approved:        strconv.FormatBool(eval.Approved),
		Comments:        eval.Comments,
	}

	var (
		wg                 sync.WaitGroup
		student, evaluator *model.User
		competency         *model.Competency
		errs               = make(chan error, 3)
	)

	lookup := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				errs <- err
			}
		}()
	}

	lookup(func() error {
		u, err := p.users.Get(ctx, eval.UserIDBeingEvaluated)
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		student = u
		return err
	})
	lookup(func() error {
		u, err := p.users.Get(ctx, eval.UserIDEvaluator)
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		evaluator = u
		return err
	})
	lookup(func() error {
		c, err := p.competencies.Get(ctx, row.CompetencyID)
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		competency = c
		return err
	})

	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return Row{}, err
	}

	if student != nil {
		row.StudentName = student.UserInfo.Name
		row.Cohort = student.Cohort
	}
	if evaluator != nil {
		row.EvaluatorName = evaluator.UserInfo.Name
		row.EvaluatorRole = string(evaluator.Role)
	}
	if competency != nil {
		row.CompetencyTitle = competency.CompetencyTitle
		row.Level = strconv.Itoa(int(competency.Difficulty))
	}

	return row, nil
}

func renderCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
