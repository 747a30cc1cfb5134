package shared

import "time"

type ServerConfig struct {
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Cors     CorsConfig     `mapstructure:"cors"`
	Seed     SeedConfig     `mapstructure:"seed" validate:"required"`
	Cron     CronConfig     `mapstructure:"cron" validate:"required"`
}

type ClientConfig struct {
	BaseURL string        `mapstructure:"baseURL" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	DSN    string `mapstructure:"dsn"`

	// Dir is the root directory of the sqlite file, ignored when DSN is set
	Dir string `mapstructure:"dir"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type SeedConfig struct {
	URL      string        `mapstructure:"url" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Schedule string        `mapstructure:"schedule"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}
