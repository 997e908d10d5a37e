// Package config provides centralized configuration management for the site
// tooling. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Site     SiteConfig
	Drive    DriveConfig
	Database DatabaseConfig
	Palette  PaletteConfig
	Logging  LoggingConfig
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 5000)
	Port int `env:"SERVER_PORT" default:"5000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of CIDRs or IPs whose
	// X-Real-IP / X-Forwarded-For headers are believed (default: none)
	TrustedProxies string `env:"SERVER_TRUSTED_PROXIES"`
}

// SiteConfig locates the content tree and its companions.
type SiteConfig struct {
	// ContentDir holds one directory per page (default: content)
	ContentDir string `env:"SITE_CONTENT_DIR" envAlt:"CONTENT_DIR" default:"content"`

	// TemplateDir holds html/template files; optional (default: templates)
	TemplateDir string `env:"SITE_TEMPLATE_DIR" default:"templates"`

	// DatabagDir holds .ini/.json/.yaml databags (default: databags)
	DatabagDir string `env:"SITE_DATABAG_DIR" default:"databags"`

	// SponsorsPage is the page whose attachments hold sponsors.csv
	SponsorsPage string `env:"SITE_SPONSORS_PAGE" default:"/sponsors/"`

	// Watch reloads databags when their files change (default: true)
	Watch bool `env:"SITE_WATCH" default:"true"`
}

// DriveConfig controls rewriting of seminar content links to Google Drive.
type DriveConfig struct {
	// Bag is the databag mapping site paths to Drive file ids
	Bag string `env:"DRIVE_BAG" default:"drivepaths"`

	// Marker is the path segment that must resolve through the bag
	Marker string `env:"DRIVE_MARKER" default:"/seminarContent"`

	// URLFormat receives the file id via %s
	URLFormat string `env:"DRIVE_URL_FORMAT" default:"https://drive.google.com/file/d/%s/view?usp=sharing"`
}

// DatabaseConfig holds the optional Postgres databag store settings.
// When URL is empty databags are read from DatabagDir only.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL" envAlt:"DB_URL"`
	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// PaletteConfig holds color generation defaults.
type PaletteConfig struct {
	// DefaultColors is used when a template asks for a palette without a size
	DefaultColors int `env:"PALETTE_DEFAULT_COLORS" default:"20"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// TrustedProxyList splits TrustedProxies into entries.
func (c *ServerConfig) TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UsesDatabase reports whether databags should come from Postgres.
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}
