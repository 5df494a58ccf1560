package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Stickers StickersConfig `mapstructure:"stickers"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type LimitsConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	MaxRows        int   `mapstructure:"max_rows"`
}

// StickersConfig carries the render defaults shown in the web form sidebar.
// Per-request form values override these within the validated ranges.
type StickersConfig struct {
	SizeCM           float64       `mapstructure:"size_cm"`
	LogoScalePct     int           `mapstructure:"logo_scale_pct"`
	CutoutPaddingPct int           `mapstructure:"cutout_padding_pct"`
	SerialWidthPct   int           `mapstructure:"serial_width_pct"`
	DPI              int           `mapstructure:"dpi"`
	ErrorCorrection  string        `mapstructure:"error_correction"`
	BoxSize          int           `mapstructure:"box_size"`
	BorderModules    int           `mapstructure:"border_modules"`
	BatchTTL         time.Duration `mapstructure:"batch_ttl"`
}

func Load(path string) (*Config, error) {
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	viper.SetDefault("limits.max_upload_bytes", int64(16<<20))
	viper.SetDefault("limits.max_rows", 500)

	viper.SetDefault("stickers.size_cm", 8.0)
	viper.SetDefault("stickers.logo_scale_pct", 25)
	viper.SetDefault("stickers.cutout_padding_pct", 120)
	viper.SetDefault("stickers.serial_width_pct", 50)
	viper.SetDefault("stickers.dpi", 600)
	viper.SetDefault("stickers.error_correction", "H")
	viper.SetDefault("stickers.box_size", 20)
	viper.SetDefault("stickers.border_modules", 2)
	viper.SetDefault("stickers.batch_ttl", 30*time.Minute)
}
