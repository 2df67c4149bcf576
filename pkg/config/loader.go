package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

type loader struct {
	files       []string
	environment map[string]string
	prefix      string
}

// Option configures a single Load call.
type Option func(*loader)

// WithEnvFiles loads the given dotenv files instead of the default ".env".
// Variables already present in the process environment win. Missing files
// are skipped.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, files...)
	}
}

// WithEnvironment parses from vars instead of the process environment.
// Dotenv files are not read in this mode.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) {
		l.environment = vars
	}
}

// WithPrefix prepends prefix to every variable name of the struct.
func WithPrefix(prefix string) Option {
	return func(l *loader) {
		l.prefix = prefix
	}
}

// Load parses environment variables into v according to its `env` tags.
//
//	var cfg auth.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	if l.environment == nil {
		if err := l.loadFiles(); err != nil {
			return err
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: l.environment,
		Prefix:      l.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func (l *loader) loadFiles() error {
	if len(l.files) == 0 {
		defaultEnvLoaded.Do(func() {
			// A missing default .env is normal outside local development.
			_ = godotenv.Load()
		})
		return nil
	}

	for _, f := range l.files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", f, err))
		}
	}
	return nil
}
