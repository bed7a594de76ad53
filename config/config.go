package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Persisted state: two JSON documents under DataDir.
	DataDir     string
	InvoiceFile string
	LedgerFile  string

	// Rate APIs. Overridable so tests can point at a local server.
	FiatRateURL       string
	StablecoinRateURL string

	SupportedCurrencies []string
	Stablecoins         []string

	PlatformFeePct   float64
	OnrampSpreadPct  float64
	OfframpSpreadPct float64

	OnrampProviders  []string
	OfframpProviders []string

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyVAT     string

	ContractNetwork string

	LogLevel  string
	LogFormat string
	LogOutput string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	dataDir := getEnvOrDefault("DATA_DIR", "data")

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DataDir:     dataDir,
		InvoiceFile: filepath.Join(dataDir, "invoices.json"),
		LedgerFile:  filepath.Join(dataDir, "ledger.json"),

		FiatRateURL:       getEnvOrDefault("FIAT_RATE_URL", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies"),
		StablecoinRateURL: getEnvOrDefault("STABLECOIN_RATE_URL", "https://api.coingecko.com/api/v3/simple/price"),

		SupportedCurrencies: getEnvList("SUPPORTED_CURRENCIES", []string{"USD", "EUR", "GBP", "INR", "JPY", "AUD", "CAD"}),
		Stablecoins:         getEnvList("STABLECOINS", []string{"usdc", "usdt", "dai"}),

		PlatformFeePct:   getEnvFloat("PLATFORM_FEE_PCT", 0.01),
		OnrampSpreadPct:  getEnvFloat("ONRAMP_SPREAD_PCT", 0.005),
		OfframpSpreadPct: getEnvFloat("OFFRAMP_SPREAD_PCT", 0.005),

		OnrampProviders:  getEnvList("ONRAMP_PROVIDERS", []string{"MoonPay", "Ramp", "Transak"}),
		OfframpProviders: getEnvList("OFFRAMP_PROVIDERS", []string{"Circle", "Binance", "Coinbase"}),

		CompanyName:    getEnvOrDefault("COMPANY_NAME", "Crossover Solutions"),
		CompanyAddress: getEnvOrDefault("COMPANY_ADDRESS", "123 Main Street, Rotterdam, Netherlands"),
		CompanyEmail:   getEnvOrDefault("COMPANY_EMAIL", "info@crossover-solutions.com"),
		CompanyVAT:     getEnvOrDefault("COMPANY_VAT", "NL123456789B01"),

		ContractNetwork: getEnvOrDefault("CONTRACT_NETWORK", "Polygon zkEVM"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "console"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stdout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SupportedCurrencies) == 0 {
		return fmt.Errorf("SUPPORTED_CURRENCIES must not be empty")
	}
	if len(c.Stablecoins) == 0 {
		return fmt.Errorf("STABLECOINS must not be empty")
	}
	if c.PlatformFeePct < 0 || c.OnrampSpreadPct < 0 || c.OfframpSpreadPct < 0 {
		return fmt.Errorf("fee and spread percentages must be non-negative")
	}
	return nil
}

// SupportsCurrency reports whether the given 3-letter code is a supported
// customer payment currency.
func (c *Config) SupportsCurrency(code string) bool {
	for _, cur := range c.SupportedCurrencies {
		if strings.EqualFold(cur, code) {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
