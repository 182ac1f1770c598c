// Package config reads application settings from the environment.
package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		SMTP
		Auth
	}

	Database struct {
		Path string
	}

	SMTP struct {
		Host     string // empty disables email delivery
		Port     int
		Username string
		Password string
		From     string
	}

	Auth struct {
		BcryptCost int
	}
)

// MailEnabled reports whether an SMTP relay is configured.
func (c *Config) MailEnabled() bool { return c.SMTP.Host != "" }

// New builds a Config from environment variables with sane defaults.
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", "library.db")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "")
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		SMTP: SMTP{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
	}
}
