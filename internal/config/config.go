package config

import "time"

// Config is the runtime configuration for a function server.
type Config struct {
	ListenAddr         string        `yaml:"listen_addr"`          // e.g., ":9443"
	TLSCertsDir        string        `yaml:"tls_certs_dir"`        // directory with tls.crt, tls.key, ca.crt; empty means no mTLS
	Insecure           bool          `yaml:"insecure"`             // serve without credentials or encryption
	GracePeriodSeconds int           `yaml:"grace_period_seconds"` // shutdown grace period
	Logging            LoggingConfig `yaml:"logging"`              // logging configuration
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // "disabled", "debug" or "info"
}

// GracePeriod returns the shutdown grace period as a duration.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodSeconds) * time.Second
}
