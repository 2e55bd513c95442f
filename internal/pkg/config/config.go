// Package config abstracts runtime configuration lookup.
//
// Business code depends on the Config interface; the concrete implementation
// (a watched Viper file) lives alongside it.
package config

import (
	"io"
	"time"
)

// Config defines typed getters for configuration values.
//
// Implementations handle missing keys and conversion failures by returning
// the type's zero value.
type Config interface {
	io.Closer

	// GetBool retrieves the configuration value for key as a bool.
	GetBool(key string) bool

	// GetString retrieves the configuration value for key as a string.
	GetString(key string) string

	// GetInt retrieves the configuration value for key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the configuration value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the configuration value for key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the configuration value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the configuration value for key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the configuration value for key as minutes.
	GetMinute(key string) time.Duration

	// GetArray retrieves the configuration value for key as a string slice.
	// The value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}
