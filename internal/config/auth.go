package config

const (
	// TokenStrategyShared issues one token, generated at startup, to every login.
	TokenStrategyShared = "shared"
	// TokenStrategyPerLogin issues a fresh random token on each login.
	TokenStrategyPerLogin = "per-login"
)

// AuthConfig configures token issuance.
type AuthConfig struct {
	Strategy string `yaml:"token-strategy"`
}

// TokenStrategy returns TokenStrategyShared or TokenStrategyPerLogin.
func (a *AuthConfig) TokenStrategy() string {
	return a.Strategy
}
