package config

// AuthConfig groups guardrails for the login and registration forms.
type AuthConfig struct {
	// LoginRatePerMinute is the sustained number of login/register submissions
	// allowed per client IP.
	LoginRatePerMinute int `env:"AUTH_LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	// LoginBurst is the number of submissions allowed in a burst before limiting kicks in.
	LoginBurst int `env:"AUTH_LOGIN_BURST" envDefault:"5"`

	// MinPasswordLength is enforced on the registration form before calling the backend.
	MinPasswordLength int `env:"AUTH_MIN_PASSWORD_LENGTH" envDefault:"6"`
}

// Sanitize clamps rate limits and password rules to usable values.
func (a *AuthConfig) Sanitize() {
	if a.LoginRatePerMinute < 1 {
		a.LoginRatePerMinute = 1
	}
	if a.LoginBurst < 1 {
		a.LoginBurst = 1
	}
	if a.MinPasswordLength < 1 {
		a.MinPasswordLength = 1
	}
}
