package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints on the loaded config and the
// cross-field rule that at least one OAuth provider is fully configured.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				return fmt.Errorf("invalid config: field %s failed %q validation", fe.Field(), fe.Tag())
			}
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if !cfg.Twitter.Configured() && !cfg.Google.Configured() {
		return fmt.Errorf("no OAuth provider configured: set TWITTER_CLIENT_ID/TWITTER_CLIENT_SECRET or GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET")
	}

	return nil
}
