package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains service configuration parameters.
type Config struct {
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`
	Tables   Tables `envPrefix:"TABLE_"`
	Export   Export `envPrefix:"EXPORT_"`
}

// Tables contains the DynamoDB table names.
type Tables struct {
	Users            string `env:"USERS" envDefault:"users"`
	Competencies     string `env:"COMPETENCIES" envDefault:"competencies"`
	EvaluationScales string `env:"EVALUATION_SCALES" envDefault:"evaluation_scales"`
	Evaluations      string `env:"EVALUATIONS" envDefault:"evaluations"`
	Locations        string `env:"TRACKING_LOCATIONS" envDefault:"tracking_locations_to_competencies"`
	Associations     string `env:"USER_ASSOCIATIONS" envDefault:"users_to_tracking_locations"`
	AssociationIndex string `env:"ASSOCIATION_INDEX" envDefault:"user_association_index"`
}

// Export contains evaluation export parameters.
type Export struct {
	Bucket      string `env:"BUCKET" envDefault:"comptrack-evaluation-exports"`
	Prefix      string `env:"PREFIX" envDefault:"export/"`
	FromAddress string `env:"FROM_ADDRESS"`
	ToAddress   string `env:"TO_ADDRESS"`
	Concurrency int    `env:"CONCURRENCY" envDefault:"8"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
