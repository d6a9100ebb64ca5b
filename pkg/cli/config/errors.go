package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrInvalidOrigin    = goerr.New("invalid CORS origin")
	ErrInvalidMaxAge    = goerr.New("CORS max age must not be negative")
	ErrInvalidLogLevel  = goerr.New("invalid log level")
	ErrInvalidLogFormat = goerr.New("invalid log format")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	OriginKey     = "origin"
	MaxAgeKey     = "max_age"
	LogLevelKey   = "log_level"
	LogFormatKey  = "log_format"
)
