package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// CatalogPaths are .hcl files or directories declaring nodes.
	CatalogPaths []string `validate:"required,min=1,dive,required"`
	// RecordingPaths are YAML manifests, one plan per manifest.
	RecordingPaths []string `validate:"required,min=1,dive,required"`
	// Targets are the requested outputs. Empty means every registered node.
	Targets []string `validate:"dive,required"`

	OutputFormat string `validate:"oneof=text json"`
	LogFormat    string `validate:"oneof=text json"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	// WorkerCount bounds concurrent planning, see planner.DefaultWorkers.
	WorkerCount int `validate:"min=1"`

	IncludeRoot     bool
	CheckPredicates bool

	PublishURL       string `validate:"omitempty,url"`
	PublishNamespace string
	PublishEvent     string
	PublishAckEvent  string
	PublishTimeout   time.Duration `validate:"min=0"`
}

// NewConfig fills unset formats and level with defaults and validates the
// result. WorkerCount has no default here: zero is rejected.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s needs at least one entry", fe.Field())
		}
		if fe.Tag() == "required" {
			return fmt.Sprintf("%s is required and cannot be empty", fe.Field())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
