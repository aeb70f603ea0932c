package config

// GoogleConfig contains Google sign-in configuration. Google sign-in is
// optional: when ClientID is empty the portal only offers password login.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:""`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:""`

	// RedirectPath is appended to the portal base URL to form the OAuth
	// callback URL registered with Google.
	RedirectPath string `env:"REDIRECT_PATH" envDefault:"/auth/google/callback"`
}

// Enabled reports whether Google sign-in is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}
