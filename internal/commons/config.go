package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"renovado/internal/config"
)

// fileConfig is the yaml shape; durations travel as strings ("5m", "24h")
// because yaml has no native duration type.
type fileConfig struct {
	Server struct {
		Port         int    `yaml:"port"`
		ReadTimeout  string `yaml:"readTimeout"`
		WriteTimeout string `yaml:"writeTimeout"`
		IdleTimeout  string `yaml:"idleTimeout"`
	} `yaml:"server"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		MaxOpenConns    int    `yaml:"maxOpenConns"`
		MaxIdleConns    int    `yaml:"maxIdleConns"`
		ConnMaxLifetime string `yaml:"connMaxLifetime"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Order struct {
		NumberAttempts      int    `yaml:"numberAttempts"`
		CreateRetryAttempts int    `yaml:"createRetryAttempts"`
		TxTimeout           string `yaml:"txTimeout"`
	} `yaml:"order"`
	Auth struct {
		TokenTTL string `yaml:"tokenTTL"`
	} `yaml:"auth"`
}

// LoadConfig reads a yaml config file and converts it into config.Config.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	readTimeout, err := parseDuration(fc.Server.ReadTimeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("server.readTimeout: %w", err)
	}
	writeTimeout, err := parseDuration(fc.Server.WriteTimeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("server.writeTimeout: %w", err)
	}
	idleTimeout, err := parseDuration(fc.Server.IdleTimeout, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("server.idleTimeout: %w", err)
	}
	connMaxLifetime, err := parseDuration(fc.Database.ConnMaxLifetime, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("database.connMaxLifetime: %w", err)
	}
	txTimeout, err := parseDuration(fc.Order.TxTimeout, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("order.txTimeout: %w", err)
	}
	tokenTTL, err := parseDuration(fc.Auth.TokenTTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("auth.tokenTTL: %w", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         fc.Server.Port,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		Database: config.DatabaseConfig{
			Host:            fc.Database.Host,
			Port:            fc.Database.Port,
			User:            fc.Database.User,
			Password:        fc.Database.Password,
			Name:            fc.Database.Name,
			MaxOpenConns:    fc.Database.MaxOpenConns,
			MaxIdleConns:    fc.Database.MaxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: config.LogConfig{Level: fc.Log.Level, Format: fc.Log.Format},
		Order: config.OrderConfig{
			NumberAttempts:      fc.Order.NumberAttempts,
			CreateRetryAttempts: fc.Order.CreateRetryAttempts,
			TxTimeout:           txTimeout,
		},
		Auth: config.AuthConfig{TokenTTL: tokenTTL},
	}

	if cfg.Order.NumberAttempts <= 0 {
		cfg.Order.NumberAttempts = 10
	}
	if cfg.Order.CreateRetryAttempts <= 0 {
		cfg.Order.CreateRetryAttempts = 3
	}

	return cfg, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
