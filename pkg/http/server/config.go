package server

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              int
	Timeout           time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	UseRateLimit      bool
	RateLimitRPS      float64
	RateLimitBurst    int
}

// ConfigFromViper reads the http server keys registered by util.SetConfigDefaults.
func ConfigFromViper() Config {
	return Config{
		Port:              viper.GetInt("API_PORT"),
		Timeout:           viper.GetDuration("API_TIMEOUT"),
		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
		UseRateLimit:      viper.GetBool("USE_RATE_LIMIT"),
		RateLimitRPS:      viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    viper.GetInt("RATE_LIMIT_BURST"),
	}
}
