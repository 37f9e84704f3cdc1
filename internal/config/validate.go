package config

import (
	"errors"
	"fmt"
	"net"
)

const sha256HexLength = 64

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.DatabasePath == "" {
		return errors.New("paths.database_path must be set")
	}
	if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
		return fmt.Errorf("paths.api_bind %q is not a host:port address: %w", c.Paths.APIBind, err)
	}
	return nil
}

func (c *Config) validateAuth() error {
	if len(c.Auth.PasswordHash) != sha256HexLength {
		return fmt.Errorf("auth.password_hash must be a %d character SHA-256 hex digest", sha256HexLength)
	}
	for _, r := range c.Auth.PasswordHash {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return errors.New("auth.password_hash must be lowercase hexadecimal")
		}
	}
	return nil
}
