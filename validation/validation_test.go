package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/whispir/errors"
)

type credentials struct {
	APIKey   string `mapstructure:"api_key" validate:"required"`
	Username string `mapstructure:"username" validate:"required"`
	Port     int    `validate:"omitempty,min=1,max=65535"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(credentials{APIKey: "k", Username: "u", Port: 8080}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Required(t *testing.T) {
	err := Validate(credentials{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}

	fields := Fields(err)
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", fields)
	}
	if fields[0].Field != "api_key" || fields[0].Message != "is required" {
		t.Errorf("unexpected first field error %+v", fields[0])
	}
	if fields[1].Field != "username" {
		t.Errorf("expected username, got %q", fields[1].Field)
	}
}

func TestValidate_Range(t *testing.T) {
	err := Validate(credentials{APIKey: "k", Username: "u", Port: 70000})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "port: must be at most 65535") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFields_NonValidationError(t *testing.T) {
	if got := Fields(errors.Configuration("x")); got != nil {
		t.Errorf("expected nil fields, got %v", got)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"APIKey":    "a_p_i_key",
		"DebugHost": "debug_host",
		"port":      "port",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
