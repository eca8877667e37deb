package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

var log = logging.MustGetLogger("configs")

type Config struct {
	DBDriver  string        `mapstructure:"db_driver"`
	DBSource  string        `mapstructure:"db_source"`
	Port      string        `mapstructure:"port"`
	BaseURL   string        `mapstructure:"base_url"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`
	LogLevel  string        `mapstructure:"log_level"`

	CORSOrigins []string `mapstructure:"cors_origins"`

	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	SeedDemo      bool   `mapstructure:"seed_demo"`

	TrackerBuffer  int `mapstructure:"tracker_buffer"`
	TrackerWorkers int `mapstructure:"tracker_workers"`

	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`
}

var defaults = map[string]any{
	"db_driver":       "sqlite",
	"db_source":       "brewpair.db",
	"port":            "8000",
	"base_url":        "http://localhost:8000",
	"jwt_secret":      "changeme",
	"jwt_ttl":         "24h",
	"log_level":       "INFO",
	"cors_origins":    "*",
	"admin_email":     "",
	"admin_password":  "",
	"seed_demo":       false,
	"tracker_buffer":  256,
	"tracker_workers": 2,
	"amqp_url":        "",
	"amqp_exchange":   "analytics_events",
}

// LoadConfig reads .env (if any), the optional config file, then the environment.
// Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warningf("could not load .env: %v", err)
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(strings.Join(v.GetStringSlice("cors_origins"), ","))

	if cfg.TrackerBuffer <= 0 {
		cfg.TrackerBuffer = 256
	}
	if cfg.TrackerWorkers <= 0 {
		cfg.TrackerWorkers = 1
	}
	if cfg.JWTSecret == "changeme" {
		log.Warning("JWT_SECRET is the default value, set it outside development")
	}
	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
