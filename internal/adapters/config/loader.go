// Package config provides the configuration loader for smartmate.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/afero"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const maxRetryAttempts = 10

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger        ports.Logger
	FS            afero.Fs
	LookupEnv     func(string) (string, bool)
	UserConfigDir func() (string, error)
}

// NewLoader creates a new Loader reading from the OS filesystem and environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:        logger,
		FS:            afero.NewOsFs(),
		LookupEnv:     os.LookupEnv,
		UserConfigDir: os.UserConfigDir,
	}
}

// Load resolves the configuration for cwd. The file is looked up in
// $SMARTMATE_CONFIG, then cwd and its parents, then the user config
// directory. Without a file the defaults apply. Environment overrides are
// applied last and the result is validated.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	path, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	if path != "" {
		var file File
		if err := readAndUnmarshalYAML(l.FS, path, &file); err != nil {
			return nil, zerr.With(err, "path", path)
		}
		apply(&cfg, &file)
	}

	l.applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigInvalid, err), "path", path)
	}

	return &cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	if explicit, ok := l.LookupEnv(domain.EnvConfig); ok && explicit != "" {
		if _, err := l.FS.Stat(explicit); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", explicit)
		}
		return explicit, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if l.UserConfigDir == nil {
		return "", nil
	}
	dir, err := l.UserConfigDir()
	if err != nil {
		return "", nil
	}
	candidate := filepath.Join(dir, domain.AppName, domain.ConfigFileName)
	if _, err := l.FS.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

func (l *Loader) applyEnv(cfg *domain.Config) {
	if v, ok := l.LookupEnv(domain.EnvAPIURL); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := l.LookupEnv(domain.EnvToken); ok && v != "" {
		if cfg.API.Token != "" && l.Logger != nil {
			l.Logger.Warn(domain.EnvToken + " overrides the token from the config file")
		}
		cfg.API.Token = v
	}
}

func apply(cfg *domain.Config, f *File) {
	if f.API.BaseURL != "" {
		cfg.API.BaseURL = f.API.BaseURL
	}
	cfg.API.Prefix = f.API.Prefix
	cfg.API.Token = f.API.Token
	cfg.API.Headers = f.API.Headers
	setDuration(&cfg.API.Timeout, f.API.Timeout)

	setDuration(&cfg.Cache.StaleTime, f.Cache.StaleTime)
	setDuration(&cfg.Cache.GCTime, f.Cache.GCTime)

	if f.Retry.MaxAttempts != nil {
		cfg.Retry.MaxAttempts = *f.Retry.MaxAttempts
	}
	setDuration(&cfg.Retry.BaseDelay, f.Retry.BaseDelay)
	setDuration(&cfg.Retry.MaxDelay, f.Retry.MaxDelay)
}

func setDuration(dst, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}

func validate(cfg *domain.Config) error {
	api := &cfg.API
	cache := &cfg.Cache
	retry := &cfg.Retry

	return validation.Errors{
		"api": validation.ValidateStruct(api,
			validation.Field(&api.BaseURL, validation.Required, is.RequestURL),
			validation.Field(&api.Timeout, validation.Required, validation.Min(time.Millisecond)),
		),
		"cache": validation.ValidateStruct(cache,
			validation.Field(&cache.StaleTime, validation.Min(time.Duration(0))),
			validation.Field(&cache.GCTime, validation.Required, validation.Min(time.Second)),
		),
		"retry": validation.ValidateStruct(retry,
			validation.Field(&retry.MaxAttempts, validation.Min(0), validation.Max(maxRetryAttempts)),
			validation.Field(&retry.BaseDelay, validation.When(retry.MaxAttempts > 1, validation.Required)),
			validation.Field(&retry.MaxDelay, validation.Min(retry.BaseDelay)),
		),
	}.Filter()
}

func readAndUnmarshalYAML[T any](fs afero.Fs, configPath string, target *T) error {
	configFile, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
