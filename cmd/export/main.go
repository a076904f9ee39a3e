// The export Lambda scans every evaluation, joins users and
// competencies into the tabular report, and uploads the CSV to S3.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/google/uuid"

	"github.com/praxislab/comptrack/internal/config"
	"github.com/praxislab/comptrack/internal/export"
	"github.com/praxislab/comptrack/internal/logger"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/notify/ses"
	"github.com/praxislab/comptrack/internal/repository"
	"github.com/praxislab/comptrack/internal/storage/s3"
	"github.com/praxislab/comptrack/internal/store"
)

type handler struct {
	pipeline *export.Pipeline
	prefix   string
	logger   *logger.Logger
}

type exportResponse struct {
	Path string `json:"path"`
}

func (h *handler) handle(ctx context.Context) (exportResponse, error) {
	path := fmt.Sprintf("%sevaluations-%s-%s.csv",
		h.prefix,
		time.Now().UTC().Format("2006-01-02"),
		uuid.NewString(),
	)

	if err := h.pipeline.Run(ctx, path); err != nil {
		h.logger.Error("export failed", "path", path, "error", err)
		return exportResponse{}, err
	}
	return exportResponse{Path: path}, nil
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}
	l := logger.New(cfg.LogLevel)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		l.Fatal("failed to load aws config", "error", err)
	}

	s := store.New(dynamodb.NewFromConfig(awsCfg))
	evaluations := repository.NewEvaluations(s, cfg.Tables.Evaluations)
	users := repository.NewUsers(s, cfg.Tables.Users)
	competencies := repository.NewCompetencies(s, cfg.Tables.Competencies)

	sink := s3.NewClient(awss3.NewFromConfig(awsCfg), cfg.Export.Bucket)

	var notifier model.Notifier
	if cfg.Export.FromAddress != "" && cfg.Export.ToAddress != "" {
		notifier = ses.NewNotifier(sesv2.NewFromConfig(awsCfg), cfg.Export.Bucket, cfg.Export.FromAddress, cfg.Export.ToAddress)
	}

	pipeline := export.NewPipeline(evaluations, users, competencies, sink, notifier, l, cfg.Export.Concurrency)

	h := &handler{pipeline: pipeline, prefix: cfg.Export.Prefix, logger: l}
	lambda.Start(h.handle)
}
