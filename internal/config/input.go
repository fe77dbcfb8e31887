package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/mccall/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of model configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file, fills in solver defaults and
// validates the result. Empirical wage files are resolved relative to the config file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(filename)
	for i := range config.Models {
		dist := &config.Models[i].Distribution
		if dist.File != "" && !filepath.IsAbs(dist.File) {
			dist.File = filepath.Join(baseDir, dist.File)
		}
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Parse decodes YAML and applies defaults without validating.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ApplyDefaults(&config)
	return &config, nil
}

// ApplyDefaults fills omitted global solver settings.
func ApplyDefaults(config *domain.Configuration) {
	if config.Solver.SampleSize == 0 {
		config.Solver.SampleSize = domain.DefaultSampleSize
	}
	if config.Solver.Tolerance == 0 {
		config.Solver.Tolerance = domain.DefaultTolerance
	}
	if config.Solver.MaxIterations == 0 {
		config.Solver.MaxIterations = domain.DefaultMaxIterations
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Models) == 0 {
		return fmt.Errorf("no models provided")
	}

	seen := make(map[string]bool, len(config.Models))
	for i, model := range config.Models {
		if err := ip.validateModel(config, &model); err != nil {
			return fmt.Errorf("model %d validation failed: %w", i, err)
		}
		key := strings.ToLower(model.Name)
		if seen[key] {
			return fmt.Errorf("model %d validation failed: duplicate model name %q", i, model.Name)
		}
		seen[key] = true
	}

	return nil
}

// validateModel validates a single model and its effective solver settings
func (ip *InputParser) validateModel(config *domain.Configuration, model *domain.ModelSpec) error {
	if strings.TrimSpace(model.Name) == "" {
		return fmt.Errorf("model name is required")
	}
	if err := config.Parameters(*model).Validate(); err != nil {
		return err
	}
	if err := ip.validateDistribution(&model.Distribution); err != nil {
		return fmt.Errorf("distribution: %w", err)
	}
	return nil
}

// validateDistribution checks the fields each distribution type needs
func (ip *InputParser) validateDistribution(dist *domain.DistributionSpec) error {
	switch strings.ToLower(strings.TrimSpace(dist.Type)) {
	case domain.DistUniform:
		if dist.High <= dist.Low {
			return fmt.Errorf("uniform high must be greater than low")
		}
	case domain.DistTruncatedNormal:
		if dist.StdDev <= 0 {
			return fmt.Errorf("truncated normal std_dev must be positive")
		}
		if dist.Lower != nil && dist.Upper != nil && *dist.Lower >= *dist.Upper {
			return fmt.Errorf("truncated normal lower bound must be below upper bound")
		}
	case domain.DistLogNormal:
		if dist.Sigma <= 0 {
			return fmt.Errorf("lognormal sigma must be positive")
		}
	case domain.DistConstant:
		if math.IsNaN(dist.Value) || math.IsInf(dist.Value, 0) {
			return fmt.Errorf("constant value must be finite")
		}
	case domain.DistEmpirical:
		if dist.File == "" {
			return fmt.Errorf("empirical distribution requires a wage file")
		}
	case "":
		return fmt.Errorf("distribution type is required")
	default:
		return fmt.Errorf("unsupported distribution type %q (want uniform, truncated_normal, lognormal, constant or empirical)", dist.Type)
	}
	return nil
}

// SaveToFile writes a configuration as YAML.
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// CreateExampleConfiguration returns the two reference McCall instances: wage offers
// uniform on [0,1] and normal(1, 0.5) truncated to [0, ∞), both with β = 0.9 and c = 0.1.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	zero, verbose := 0.0, true
	return &domain.Configuration{
		Solver: domain.SolverSettings{
			SampleSize:    domain.DefaultSampleSize,
			Tolerance:     domain.DefaultTolerance,
			MaxIterations: domain.DefaultMaxIterations,
		},
		Models: []domain.ModelSpec{
			{
				Name:       "Uniform[0,1]",
				Beta:       0.9,
				SearchCost: 0.1,
				Distribution: domain.DistributionSpec{
					Type: domain.DistUniform,
					Low:  0,
					High: 1,
				},
				Solver: &domain.SolverSettings{Verbose: &verbose},
			},
			{
				Name:       "Truncated-Normal",
				Beta:       0.9,
				SearchCost: 0.1,
				Distribution: domain.DistributionSpec{
					Type:   domain.DistTruncatedNormal,
					Mean:   1.0,
					StdDev: 0.5,
					Lower:  &zero,
				},
			},
		},
	}
}
