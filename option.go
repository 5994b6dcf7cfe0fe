package predictor

import (
	"log"

	"github.com/alaingilbert/predictor/internal/utils"
	"github.com/jonboulle/clockwork"
)

// Config holds the collaborators of a Predictor. Zero fields get defaults in New.
type Config struct {
	Clock     clockwork.Clock
	Logger    *log.Logger
	Generator Generator
}

// Option represents a modification to the default behavior of a Predictor.
type Option func(*Config)

// WithClock overrides the clock used to timestamp armings and events.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithLogger ...
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithGenerator overrides the original generator, the one answering while disarmed.
func WithGenerator(gen Generator) Option {
	return func(c *Config) {
		c.Generator = gen
	}
}

// ArmConfig holds the options of a single Arm call.
type ArmConfig struct {
	Repeat *bool
}

// ArmOption represents a modification to the default behavior of Arm.
type ArmOption func(*ArmConfig)

// Repeat controls whether a Constant or Sequence is reused (the default) or
// consumed once, disarming the Predictor when exhausted. Rules ignore it.
func Repeat(repeat bool) ArmOption {
	return func(c *ArmConfig) {
		c.Repeat = utils.Ptr(repeat)
	}
}

// Once is Repeat(false).
func Once() ArmOption { return Repeat(false) }
