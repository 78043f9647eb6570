package config

import (
	"log"
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Billing defaults
	DefaultTaxRate decimal.Decimal // organization default, last tier of the tax fallback chain
	DefaultDueDays int             // payment terms applied when an invoice has no explicit due date

	// Membership year policy
	MembershipYearPolicy       domain.MembershipYearPolicy
	MembershipAnniversaryMonth time.Month // fixed policy: anniversary month
	MembershipAnniversaryDay   int        // fixed policy: anniversary day
	DefaultGracePeriodDays     int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "flightops-backend")
	viper.SetDefault("DEFAULT_TAX_RATE", "0.15")
	viper.SetDefault("DEFAULT_DUE_DAYS", 14)
	viper.SetDefault("MEMBERSHIP_YEAR_POLICY", "rolling")
	viper.SetDefault("MEMBERSHIP_ANNIVERSARY_MONTH", 4)
	viper.SetDefault("MEMBERSHIP_ANNIVERSARY_DAY", 1)
	viper.SetDefault("DEFAULT_GRACE_PERIOD_DAYS", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "flightops-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	taxRateStr := viper.GetString("DEFAULT_TAX_RATE")
	taxRate, err := decimal.NewFromString(taxRateStr)
	if err != nil || taxRate.IsNegative() {
		taxRate = decimal.RequireFromString("0.15")
		log.Printf("Warning: Invalid value for DEFAULT_TAX_RATE ('%s'). Defaulting to %s.\n", taxRateStr, taxRate.String())
	}

	policy := domain.MembershipYearPolicy(viper.GetString("MEMBERSHIP_YEAR_POLICY"))
	if policy != domain.MembershipYearFixed && policy != domain.MembershipYearRolling {
		log.Printf("Warning: Invalid MEMBERSHIP_YEAR_POLICY ('%s'). Defaulting to rolling.\n", policy)
		policy = domain.MembershipYearRolling
	}

	anniversaryMonth := viper.GetInt("MEMBERSHIP_ANNIVERSARY_MONTH")
	if anniversaryMonth < 1 || anniversaryMonth > 12 {
		log.Printf("Warning: Invalid MEMBERSHIP_ANNIVERSARY_MONTH (%d). Defaulting to April.\n", anniversaryMonth)
		anniversaryMonth = 4
	}
	anniversaryDay := viper.GetInt("MEMBERSHIP_ANNIVERSARY_DAY")
	if anniversaryDay < 1 || anniversaryDay > 31 {
		log.Printf("Warning: Invalid MEMBERSHIP_ANNIVERSARY_DAY (%d). Defaulting to 1.\n", anniversaryDay)
		anniversaryDay = 1
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.DefaultTaxRate = taxRate
	cfg.DefaultDueDays = viper.GetInt("DEFAULT_DUE_DAYS")
	cfg.MembershipYearPolicy = policy
	cfg.MembershipAnniversaryMonth = time.Month(anniversaryMonth)
	cfg.MembershipAnniversaryDay = anniversaryDay
	cfg.DefaultGracePeriodDays = viper.GetInt("DEFAULT_GRACE_PERIOD_DAYS")

	return cfg, nil
}
