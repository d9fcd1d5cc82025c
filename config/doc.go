// Package config loads application configuration with Viper.
//
// LoadConfig reads an optional YAML file, an optional .env file (through
// godotenv), and environment variables derived from the target struct's
// mapstructure keys:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Whispir whispir.Config `yaml:"whispir" mapstructure:"whispir"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("whispir", &cfg)
//
// A key nested under a section named after the service maps to
// SERVICE_KEY (whispir.api_key → WHISPIR_API_KEY); every other key is
// prefixed (logging.level → WHISPIR_LOGGING_LEVEL). Environment values
// override the file.
package config
