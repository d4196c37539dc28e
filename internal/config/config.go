package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// PublicURL is the externally reachable base used in QR detail links.
	PublicURL string `mapstructure:"public_url"`
}

type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	LockFile   string `mapstructure:"lock_file"`
	SimOpsFile string `mapstructure:"simops_file"`
}

type AssetsConfig struct {
	LogoPath        string `mapstructure:"logo_path"`
	WarningIconPath string `mapstructure:"warning_icon_path"`
}

type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpire time.Duration `mapstructure:"access_token_expire"`
	Issuer            string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LockPath is the absolute workbook path of the LOTO register.
func (s StorageConfig) LockPath() string {
	return filepath.Join(s.DataDir, s.LockFile)
}

// SimOpsPath is the absolute workbook path of the SIMOPS log.
func (s StorageConfig) SimOpsPath() string {
	return filepath.Join(s.DataDir, s.SimOpsFile)
}

func Load() (*Config, error) {
	v := viper.New()

	// 设置配置文件
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// 配置文件不存在，使用默认值和环境变量
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.public_url", "http://miapp.com")

	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.lock_file", "candados_data.xlsx")
	v.SetDefault("storage.simops_file", "simops_data.xlsx")

	v.SetDefault("assets.logo_path", "logo1.png")
	v.SetDefault("assets.warning_icon_path", "warning_icon.png")

	v.SetDefault("jwt.secret", "candapp-dev-secret")
	v.SetDefault("jwt.access_token_expire", "12h")
	v.SetDefault("jwt.issuer", "candapp")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.public_url", "PUBLIC_URL")

	// Storage
	v.BindEnv("storage.data_dir", "DATA_DIR")
	v.BindEnv("storage.lock_file", "LOCK_FILE")
	v.BindEnv("storage.simops_file", "SIMOPS_FILE")

	// Assets
	v.BindEnv("assets.logo_path", "LOGO_PATH")
	v.BindEnv("assets.warning_icon_path", "WARNING_ICON_PATH")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")
}

// GetEnvOrDefault 获取环境变量，如果不存在则返回默认值
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
