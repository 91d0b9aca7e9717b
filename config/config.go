package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr string
	MysqlDSN   string
	JWTSecret  string
	UploadDir  string
	LogLevel   string
}

// Load reads an optional config.yaml and environment variables
// (SERVER_ADDR, MYSQL_DSN, JWT_SECRET, UPLOAD_DIR, LOG_LEVEL), falling
// back to development defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("mysql.dsn", "root:root@tcp(localhost:3306)/greychat?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("jwt.secret", "greychat-secret-key-change-in-production")
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		ServerAddr: v.GetString("server.addr"),
		MysqlDSN:   v.GetString("mysql.dsn"),
		JWTSecret:  v.GetString("jwt.secret"),
		UploadDir:  v.GetString("upload.dir"),
		LogLevel:   v.GetString("log.level"),
	}, nil
}
