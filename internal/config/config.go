package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Host         string
		Port         int
		AllowOrigins []string `mapstructure:"allow_origins"`
		MaxUploadMB  int      `mapstructure:"max_upload_mb"`
	} `mapstructure:"http"`

	Log struct {
		Level string
		File  string
	} `mapstructure:"log"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Catalog struct {
		// ReloadMinutes > 0 periodically rebuilds the in-memory index from the DB.
		ReloadMinutes int `mapstructure:"reload_minutes"`
	} `mapstructure:"catalog"`

	Matching struct {
		// LooseThreshold is the similarity floor for loose dimension matching (0..1).
		LooseThreshold float64 `mapstructure:"loose_threshold"`
	} `mapstructure:"matching"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 8084)
	v.SetDefault("http.allow_origins", []string{"*"})
	v.SetDefault("http.max_upload_mb", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/bommatch-service.log")
	v.SetDefault("matching.loose_threshold", 0.84)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port) }
