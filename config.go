package teamsplit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Strategy selection values for Config.Strategy.
const (
	// StrategyAuto runs the exhaustive search on small rosters and the greedy
	// engine otherwise, falling back to greedy when the search cannot conclude.
	StrategyAuto = "auto"

	// StrategyExhaustive always runs the exhaustive search.
	StrategyExhaustive = "exhaustive"

	// StrategyGreedy always runs the greedy engine.
	StrategyGreedy = "greedy"
)

// Config is the configuration for the Planner.
type Config struct {
	// Strategy selects the assignment engine: "auto", "exhaustive" or "greedy".
	Strategy string `yaml:"strategy"`

	// Groups is the number of project groups per roster.
	// Zero derives the count from TargetSize.
	Groups int `yaml:"groups"`

	// TargetSize is the desired group size used when Groups is zero.
	// The group count is ceil(rosterSize / TargetSize).
	TargetSize int `yaml:"targetSize"`

	// Seed makes the greedy engine reorder equivalent individuals by a seeded hash.
	// Nil keeps roster order among equals.
	Seed *uint64 `yaml:"seed"`

	// ContainerPrefix names the groups: "G" produces G1, G2, ...
	ContainerPrefix string `yaml:"containerPrefix"`

	// Exhaustive tunes the exhaustive search.
	Exhaustive ExhaustiveConfig `yaml:"exhaustive"`
}

// ExhaustiveConfig tunes the exhaustive search.
type ExhaustiveConfig struct {
	// MaxRosterSize is the largest roster the exhaustive search accepts.
	// In auto mode it is also the threshold above which greedy is used.
	// Zero takes the default; Unlimited (any negative value) removes the limit.
	MaxRosterSize int `yaml:"maxRosterSize"`

	// Parallelism is the number of concurrent subtree workers. 1 is sequential.
	Parallelism int `yaml:"parallelism"`

	// SplitDepth is how many individuals are pre-placed to build parallel
	// branches. Zero picks a depth from Parallelism.
	SplitDepth int `yaml:"splitDepth"`

	// Timeout bounds one search. Zero takes the default; NoTimeout (any
	// negative value) removes the deadline.
	Timeout time.Duration `yaml:"timeout"`
}

// Explicit opt-outs for ExhaustiveConfig limits, since zero means "use the default".
const (
	// Unlimited disables ExhaustiveConfig.MaxRosterSize.
	Unlimited = -1

	// NoTimeout disables ExhaustiveConfig.Timeout.
	NoTimeout time.Duration = -1
)

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Strategy:        StrategyAuto,
		Groups:          0,
		TargetSize:      4,
		ContainerPrefix: "G",
		Exhaustive: ExhaustiveConfig{
			MaxRosterSize: 12,
			Parallelism:   1,
			SplitDepth:    0,
			Timeout:       30 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Every zero field is defaulted on its own, so a partial Exhaustive block
// keeps the default roster limit and timeout. Use Unlimited or NoTimeout to
// switch those off.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.TargetSize == 0 {
		cfg.TargetSize = defaults.TargetSize
	}
	if cfg.ContainerPrefix == "" {
		cfg.ContainerPrefix = defaults.ContainerPrefix
	}
	if cfg.Exhaustive.MaxRosterSize == 0 {
		cfg.Exhaustive.MaxRosterSize = defaults.Exhaustive.MaxRosterSize
	}
	if cfg.Exhaustive.Timeout == 0 {
		cfg.Exhaustive.Timeout = defaults.Exhaustive.Timeout
	}
	if cfg.Exhaustive.Parallelism == 0 {
		cfg.Exhaustive.Parallelism = defaults.Exhaustive.Parallelism
	}
}

// Validate checks configuration consistency.
//
// Rules:
//   - Strategy is one of auto, exhaustive, greedy
//   - Groups >= 0 and TargetSize >= 1
//   - SplitDepth is not negative
//   - Parallelism >= 1
//
// Negative MaxRosterSize and Timeout are accepted as Unlimited and NoTimeout.
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	switch cfg.Strategy {
	case StrategyAuto, StrategyExhaustive, StrategyGreedy:
	default:
		return fmt.Errorf("%w: unknown strategy %q (want auto, exhaustive or greedy)", ErrInvalidConfig, cfg.Strategy)
	}

	if cfg.Groups < 0 {
		return fmt.Errorf("%w: Groups must be >= 0, got %d", ErrInvalidConfig, cfg.Groups)
	}

	if cfg.TargetSize < 1 {
		return fmt.Errorf("%w: TargetSize must be >= 1, got %d", ErrInvalidConfig, cfg.TargetSize)
	}

	if cfg.Exhaustive.Parallelism < 1 {
		return fmt.Errorf("%w: Exhaustive.Parallelism must be >= 1, got %d", ErrInvalidConfig, cfg.Exhaustive.Parallelism)
	}

	if cfg.Exhaustive.SplitDepth < 0 {
		return fmt.Errorf("%w: Exhaustive.SplitDepth must be >= 0, got %d", ErrInvalidConfig, cfg.Exhaustive.SplitDepth)
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but risky values.
//
// This is called after Validate() in NewPlanner() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Strategy != StrategyGreedy && (cfg.Exhaustive.MaxRosterSize < 0 || cfg.Exhaustive.MaxRosterSize > 16) {
		logger.Warn(
			"exhaustive search limit is high, large rosters may take hours",
			"maxRosterSize", cfg.Exhaustive.MaxRosterSize,
			"recommended", "16 or lower",
		)
	}

	if cfg.Strategy == StrategyExhaustive && cfg.Exhaustive.Timeout < 0 {
		logger.Warn("exhaustive search has no timeout")
	}
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Loaded configuration
//   - error: Read, decode or validation error
//
// Example:
//
//	cfg, err := teamsplit.LoadConfig("teamsplit.yaml")
//	if err != nil {
//	    return err
//	}
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration, applies defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
