package config

import "github.com/spf13/viper"

// Config holds all process configuration, loaded from environment variables.
type Config struct {
	AppPort      string
	JWTSecret    string
	JWTAlgorithm string
	DBDriver     string // "sqlite" (embedded) or "postgres" (networked)
	DBDSN        string // file path for sqlite, DSN for postgres
	CORSOrigin   string
	RabbitMQURL  string // empty disables catalog event publication
	LogLevel     string
	LogPretty    bool
	SeedProducts bool
}

// Load reads configuration from environment variables, with Viper defaults
// for local development. JWT_SECRET and JWT_ALGORITHM must match the external
// token issuer's signing configuration exactly; that is a deployment-time
// contract this service cannot validate beyond failing verification.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "devops-secret-key")
	viper.SetDefault("JWT_ALGORITHM", "HS256")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "products.db")
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
	viper.SetDefault("SEED_PRODUCTS", true)
	viper.AutomaticEnv()

	return &Config{
		AppPort:      viper.GetString("APP_PORT"),
		JWTSecret:    viper.GetString("JWT_SECRET"),
		JWTAlgorithm: viper.GetString("JWT_ALGORITHM"),
		DBDriver:     viper.GetString("DB_DRIVER"),
		DBDSN:        viper.GetString("DB_DSN"),
		CORSOrigin:   viper.GetString("CORS_ORIGIN"),
		RabbitMQURL:  viper.GetString("RABBITMQ_URL"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		LogPretty:    viper.GetBool("LOG_PRETTY"),
		SeedProducts: viper.GetBool("SEED_PRODUCTS"),
	}
}
