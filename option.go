package pgsourcerer

import (
	"fmt"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/inflect"
	"github.com/pgsourcerer/pgsourcerer/plugin"
)

// Config is the orchestrator's entire configuration surface
// (SPEC_FULL.md §6.1-§6.4): there is no config-file discovery layer here,
// only this struct and the Options that build it.
type Config struct {
	Schemas    []string
	Role       string
	Inflection inflect.Config
	Plugins    []plugin.Plugin
	Printer    astprog.Printer
	SourceExt  string
	TargetExt  string
}

// Option configures a Config.
type Option func(*Config) error

// WithSchemas restricts IR construction to the given catalog schema
// names.
func WithSchemas(schemas ...string) Option {
	return func(c *Config) error {
		c.Schemas = schemas
		return nil
	}
}

// WithRole sets the effective database role permissions are resolved
// against.
func WithRole(role string) Option {
	return func(c *Config) error {
		if role == "" {
			return NewConfigError("Role", role, "must not be empty")
		}
		c.Role = role
		return nil
	}
}

// WithInflection overrides the default naming transforms.
func WithInflection(infl inflect.Config) Option {
	return func(c *Config) error {
		c.Inflection = infl
		return nil
	}
}

// WithPlugins registers the plugins Generate will run.
func WithPlugins(plugins ...plugin.Plugin) Option {
	return func(c *Config) error {
		if len(plugins) == 0 {
			return NewConfigError("Plugins", nil, "at least one plugin is required")
		}
		c.Plugins = plugins
		return nil
	}
}

// WithPrinter overrides the astprog.Printer used to render AST
// emissions. The default is astprog.TextPrinter.
func WithPrinter(printer astprog.Printer) Option {
	return func(c *Config) error {
		if printer == nil {
			return NewConfigError("Printer", nil, "must not be nil")
		}
		c.Printer = printer
		return nil
	}
}

// WithExtensions configures the source/target extension rewrite applied
// to computed relative import paths (default ".ts" -> ".js").
func WithExtensions(source, target string) Option {
	return func(c *Config) error {
		c.SourceExt = source
		c.TargetExt = target
		return nil
	}
}

// Apply applies a single Option to c.
func (c *Config) Apply(opt Option) error {
	return opt(c)
}

// ApplyAll applies every Option in order, stopping at the first error.
func (c *Config) ApplyAll(opts ...Option) error {
	for _, opt := range opts {
		if err := c.Apply(opt); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig builds a Config from defaults plus the given Options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Inflection: inflect.DefaultConfig(),
		Printer:    astprog.TextPrinter,
		SourceExt:  ".ts",
		TargetExt:  ".js",
	}
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	if len(c.Plugins) == 0 {
		return nil, fmt.Errorf("%w: no plugins configured", ErrMissingConfig)
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics if Config construction
// fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// ConfigError represents an invalid Option value.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("pgsourcerer: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("pgsourcerer: config error for %q: %s", e.Option, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError builds a ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}
