package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, principals,
//   secrets) and anything security sensitive
// - default: Values common across all environments (timeouts, fee rate, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Market MarketConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// MarketConfig holds the privileged principals the marketplace is deployed
// with. Administrator and initial fee recipient default to the same principal,
// mirroring a deployer address.
type MarketConfig struct {
	Administrator      string `envconfig:"MARKET_ADMINISTRATOR" required:"true"`
	FeeRecipient       string `envconfig:"MARKET_FEE_RECIPIENT" default:""`
	FeeRateBasisPoints int32  `envconfig:"MARKET_FEE_BPS" default:"500"`
	EscrowPrincipal    string `envconfig:"MARKET_ESCROW_PRINCIPAL" required:"true"`
	DevTokens          bool   `envconfig:"MARKET_DEV_TOKENS" default:"false"`
	DevSeed            bool   `envconfig:"MARKET_DEV_SEED" default:"false"`
}

func (m *MarketConfig) AdministratorID() (uuid.UUID, error) {
	id, err := uuid.Parse(m.Administrator)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid MARKET_ADMINISTRATOR: %w", err)
	}
	return id, nil
}

func (m *MarketConfig) FeeRecipientID() (uuid.UUID, error) {
	if m.FeeRecipient == "" {
		return m.AdministratorID()
	}
	id, err := uuid.Parse(m.FeeRecipient)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid MARKET_FEE_RECIPIENT: %w", err)
	}
	return id, nil
}

func (m *MarketConfig) EscrowPrincipalID() (uuid.UUID, error) {
	id, err := uuid.Parse(m.EscrowPrincipal)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid MARKET_ESCROW_PRINCIPAL: %w", err)
	}
	return id, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Market: MarketConfig{
			Administrator:      "11111111-1111-4111-8111-111111111111",
			FeeRateBasisPoints: 500,
			EscrowPrincipal:    "22222222-2222-4222-8222-222222222222",
			DevTokens:          true,
		},
	}
}
