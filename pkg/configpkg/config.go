// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Account store kinds.
const (
	StorePostgres = "postgres"
	StorePebble   = "pebble"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver            string        `mapstructure:"DB_DRIVER"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	TokenKind           string        `mapstructure:"TOKEN_KIND"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	Environement        string        `mapstructure:"GO_ENV"`

	AccountStore string `mapstructure:"ACCOUNT_STORE"`
	PebbleDir    string `mapstructure:"PEBBLE_DIR"`

	DuplicatedOrderThreshold time.Duration `mapstructure:"DUPLICATED_ORDER_THRESHOLD"`
	MarketOpensAt            int           `mapstructure:"MARKET_OPENS_AT"`
	MarketClosesAt           int           `mapstructure:"MARKET_CLOSES_AT"`
	MarketTimezone           string        `mapstructure:"MARKET_TIMEZONE"`
	OrderMaxAttempts         int           `mapstructure:"ORDER_MAX_ATTEMPTS"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TOKEN_KIND", "jwt")
	v.SetDefault("ACCESS_TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("ACCOUNT_STORE", StorePostgres)
	v.SetDefault("PEBBLE_DIR", "./data/accounts")
	v.SetDefault("DUPLICATED_ORDER_THRESHOLD", 5*time.Minute)
	v.SetDefault("MARKET_OPENS_AT", 6)
	v.SetDefault("MARKET_CLOSES_AT", 15)
	v.SetDefault("MARKET_TIMEZONE", "UTC")
	v.SetDefault("ORDER_MAX_ATTEMPTS", 3)
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

// Validate checks the values that cannot be caught by unmarshalling.
func (c Config) Validate() error {
	if c.MarketOpensAt < 0 || c.MarketOpensAt > 24 {
		return fmt.Errorf("MARKET_OPENS_AT must be within [0, 24], got %d", c.MarketOpensAt)
	}

	if c.MarketClosesAt < 0 || c.MarketClosesAt > 24 {
		return fmt.Errorf("MARKET_CLOSES_AT must be within [0, 24], got %d", c.MarketClosesAt)
	}

	if c.MarketOpensAt > c.MarketClosesAt {
		return fmt.Errorf("MARKET_OPENS_AT (%d) is after MARKET_CLOSES_AT (%d)", c.MarketOpensAt, c.MarketClosesAt)
	}

	if c.DuplicatedOrderThreshold < 0 {
		return fmt.Errorf("DUPLICATED_ORDER_THRESHOLD must not be negative, got %v", c.DuplicatedOrderThreshold)
	}

	if c.OrderMaxAttempts < 1 {
		return fmt.Errorf("ORDER_MAX_ATTEMPTS must be at least 1, got %d", c.OrderMaxAttempts)
	}

	switch c.AccountStore {
	case StorePostgres, StorePebble:
	default:
		return fmt.Errorf("unsupported ACCOUNT_STORE %q", c.AccountStore)
	}

	if _, err := time.LoadLocation(c.MarketTimezone); err != nil {
		return fmt.Errorf("invalid MARKET_TIMEZONE: %w", err)
	}

	return nil
}
