// Package validation validates configuration and request structs using
// struct tags and the go-playground validator.
//
//	type Config struct {
//	    APIKey string `mapstructure:"api_key" validate:"required"`
//	}
//	if err := validation.Validate(cfg); err != nil { ... }
//
// Failures are returned as *errors.AppError with one FieldError per field in
// Details["fields"].
package validation
