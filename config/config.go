package config

import (
	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when LENDING_DATABASE_PATH is not set.
const DefaultDatabasePath = "library.db"

// DefaultLoanDays is the lending period applied when no due date is given.
const DefaultLoanDays = 14

type (
	Config struct {
		Database
		Loans
	}

	Database struct {
		Path string
	}
	Loans struct {
		DefaultDays int
	}
)

// NewConfig reads LENDING_* environment variables over the defaults.
func NewConfig() *Config {
	return FromViper(NewViper())
}

// NewViper returns a viper instance with the defaults and environment
// binding in place, ready for command-line flags to be bound on top.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("lending")
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("loan_days", DefaultLoanDays)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	days := v.GetInt("loan_days")
	if days <= 0 {
		days = DefaultLoanDays
	}
	return &Config{
		Database: Database{
			Path: v.GetString("database_path"),
		},
		Loans: Loans{
			DefaultDays: days,
		},
	}
}
