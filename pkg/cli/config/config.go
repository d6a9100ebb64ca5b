package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	httpctrl "github.com/secmon-lab/riskcalc/pkg/controller/http"
)

// ServerConfig is the TOML file given by --config
type ServerConfig struct {
	CORS CORSConfig `toml:"cors"`
}

// CORSConfig is the [cors] table of the server configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedHeaders []string `toml:"allowed_headers"`
	MaxAge         int      `toml:"max_age"`
}

// Validate checks if the CORSConfig is valid
func (c *CORSConfig) Validate() error {
	for _, origin := range c.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	if c.MaxAge < 0 {
		return goerr.Wrap(ErrInvalidMaxAge, "invalid cors table", goerr.V(MaxAgeKey, c.MaxAge))
	}
	return nil
}

// Validate checks if the ServerConfig is valid
func (s *ServerConfig) Validate() error {
	if err := s.CORS.Validate(); err != nil {
		return goerr.Wrap(err, "invalid cors configuration")
	}
	return nil
}

// validateOrigin accepts "*" or an http(s) origin without path
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" ||
		(u.Path != "" && u.Path != "/") || u.RawQuery != "" {
		return goerr.Wrap(ErrInvalidOrigin, "origin must be scheme://host[:port]", goerr.V(OriginKey, origin))
	}
	return nil
}

// LoadServerConfig loads the server configuration from a TOML file
func LoadServerConfig(path string) (*ServerConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var cfg ServerConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}

// Server holds CLI flags for the HTTP server policy
type Server struct {
	configPath  string
	corsOrigins []string
}

// Flags returns CLI flags for server configuration
func (x *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the server configuration TOML file",
			Sources:     cli.EnvVars("RISKCALC_CONFIG"),
			Destination: &x.configPath,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Origin allowed to call the API from a browser (repeatable, '*' for any)",
			Sources:     cli.EnvVars("RISKCALC_CORS_ORIGIN"),
			Destination: &x.corsOrigins,
		},
	}
}

// ConfigPath returns the path given by --config
func (x *Server) ConfigPath() string {
	return x.configPath
}

// LogValue implements slog.LogValuer
func (x Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.configPath),
		slog.Any("cors_origins", x.corsOrigins),
	)
}

// Configure merges the config file and flags into the CORS policy. Origins
// from flags are appended to those from the file.
func (x *Server) Configure() (httpctrl.CORSConfig, error) {
	cfg := &ServerConfig{}
	if x.configPath != "" {
		loaded, err := LoadServerConfig(x.configPath)
		if err != nil {
			return httpctrl.CORSConfig{}, err
		}
		cfg = loaded
	}

	for _, origin := range x.corsOrigins {
		if err := validateOrigin(origin); err != nil {
			return httpctrl.CORSConfig{}, goerr.Wrap(err, "invalid --cors-origin")
		}
	}

	origins := append([]string{}, cfg.CORS.AllowedOrigins...)
	origins = append(origins, x.corsOrigins...)

	return httpctrl.CORSConfig{
		AllowedOrigins: origins,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:         cfg.CORS.MaxAge,
	}, nil
}
