package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EncryptionKeySize is the decoded length required for ENCRYPTION_KEY.
const EncryptionKeySize = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	// Report failures under the environment variable name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateConfig checks the configuration against its schema and the rules
// of the current environment.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if err := configValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Field: fe.Field(), Message: describeRule(fe)})
		}
	}

	if cfg.EncryptionKey != "" {
		if key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey); err == nil && len(key) != EncryptionKeySize {
			errs = append(errs, ValidationError{
				Field:   "ENCRYPTION_KEY",
				Message: fmt.Sprintf("must decode to %d bytes, got %d", EncryptionKeySize, len(key)),
			})
		}
	}

	if cfg.Environment == Production && !strings.HasPrefix(cfg.AppURL, "https://") {
		errs = append(errs, ValidationError{Field: "APP_URL", Message: "must use https in production"})
	}

	if (cfg.S3BucketName == "") != (cfg.AWSRegion == "") {
		errs = append(errs, ValidationError{Field: "S3_BUCKET_NAME", Message: "S3_BUCKET_NAME and AWS_REGION must be set together"})
	}

	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}
