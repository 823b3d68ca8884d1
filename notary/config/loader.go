package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/trufnetwork/notary/notary/internal/constants"
	"github.com/trufnetwork/notary/notary/validation"
)

// ErrInvalidConfig wraps every configuration problem, so callers can tell
// configuration failures from everything else.
var ErrInvalidConfig = errors.New("invalid configuration")

// Loader orchestrates the loading, validation, and defaulting of notary configuration
type Loader struct {
	validator *validation.RuleSet
	logger    *zap.Logger
	lookupEnv func() map[string]string
}

// NewLoader creates a new configuration loader with default validation rules
func NewLoader(logger *zap.Logger) *Loader {
	return NewLoaderWithValidation(logger, validation.DefaultRules())
}

// NewLoaderWithValidation creates a new configuration loader with custom validation rules
func NewLoaderWithValidation(logger *zap.Logger, validator *validation.RuleSet) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		validator: validator,
		logger:    logger,
		lookupEnv: func() map[string]string { return env.ToMap(os.Environ()) },
	}
}

// Load reads the optional TOML file at path, overlays the environment, and
// processes the result. An empty path skips the file.
func (l *Loader) Load(path string) (*ProcessedConfig, error) {
	var raw RawConfig
	var sources []string

	if path != "" {
		fileCfg, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = fileCfg
		sources = append(sources, "file:"+path)
	}

	if err := env.ParseWithOptions(&raw, env.Options{Environment: l.lookupEnv()}); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "parse environment: %v", err)
	}
	sources = append(sources, "env")

	cfg, err := l.Process(raw)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// ReadFile decodes a TOML configuration file
func ReadFile(path string) (RawConfig, error) {
	var raw RawConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return raw, errors.Wrapf(ErrInvalidConfig, "read config file %s: %v", path, err)
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return raw, errors.Wrapf(ErrInvalidConfig, "decode config file %s: %v", path, err)
	}
	return raw, nil
}

// Process validates a raw configuration and applies defaults
func (l *Loader) Process(raw RawConfig) (*ProcessedConfig, error) {
	fields := validation.Fields{
		RPCURL:        strings.TrimSpace(raw.RPCURL),
		PrivateKey:    raw.PrivateKey,
		ExplorerTxURL: strings.TrimSpace(raw.ExplorerTxURL),
		WatchSchedule: strings.TrimSpace(raw.WatchSchedule),
		MetricsURL:    strings.TrimSpace(raw.MetricsEndpoint),
	}
	if err := l.validator.Validate(fields); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	cfg := &ProcessedConfig{
		RPCURL:          fields.RPCURL,
		PrivateKey:      validation.NormalizePrivateKey(raw.PrivateKey),
		ExplorerTxURL:   fields.ExplorerTxURL,
		RPCTimeout:      constants.DefaultRPCTimeout,
		ExpectedChainID: raw.ExpectedChainID,
		DialAttempts:    raw.DialAttempts,
		CircuitBreaker:  !raw.DisableCircuitBreaker,
		WatchSchedule:   fields.WatchSchedule,
		MetricsEndpoint: fields.MetricsURL,
	}
	if cfg.WatchSchedule == "" {
		cfg.WatchSchedule = constants.DefaultWatchSchedule
	}

	if cfg.ExplorerTxURL == "" {
		cfg.ExplorerTxURL = constants.DefaultExplorerTxURL
	}
	if !strings.HasSuffix(cfg.ExplorerTxURL, "/") {
		cfg.ExplorerTxURL += "/"
	}

	if raw.RPCTimeout != "" {
		timeout, err := time.ParseDuration(raw.RPCTimeout)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "rpc_timeout: %v", err)
		}
		if timeout <= 0 {
			return nil, errors.Wrap(ErrInvalidConfig, "rpc_timeout must be positive")
		}
		cfg.RPCTimeout = timeout
	}

	if cfg.DialAttempts < 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "dial_attempts cannot be negative")
	}
	if cfg.DialAttempts == 0 {
		cfg.DialAttempts = constants.DefaultDialAttempts
	}

	l.logger.Debug("configuration processed", zap.Stringer("config", cfg))
	return cfg, nil
}

// IsConfigError reports whether err came from configuration loading
func IsConfigError(err error) bool {
	return errors.Cause(err) == ErrInvalidConfig
}
