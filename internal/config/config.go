package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"       validate:"required"`
	Membership   MembershipConfig   `mapstructure:"membership"   validate:"required"`
	Confirmation ConfirmationConfig `mapstructure:"confirmation" validate:"required"`
	Identity     IdentityConfig     `mapstructure:"identity"`
	Seed         SeedConfig         `mapstructure:"seed"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port"            validate:"required,gt=0,lt=65536"`
	LogLevel       string   `mapstructure:"log_level"       validate:"required,oneof=debug info warn error"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// Leave modes for MembershipConfig.LeaveMode.
const (
	// LeaveModeHide only drops the group from the leaving user's dashboard.
	LeaveModeHide = "hide"
	// LeaveModeRemove also removes the user from the member list.
	LeaveModeRemove = "remove"
)

// MembershipConfig controls group registry behaviour.
type MembershipConfig struct {
	LeaveMode    string `mapstructure:"leave_mode"    validate:"required,oneof=hide remove"`
	CodeAttempts int    `mapstructure:"code_attempts" validate:"required,gt=0,lte=100"`
}

// ConfirmationConfig controls the two-phase delete protocol.
type ConfirmationConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"required,gt=0"`
}

// IdentityConfig configures the session identity provider.
type IdentityConfig struct {
	// DefaultUser is used when a request carries no user header.
	DefaultUser string `mapstructure:"default_user" validate:"omitempty,uuid"`
}

// SeedConfig controls loading of the demo data set at startup.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
