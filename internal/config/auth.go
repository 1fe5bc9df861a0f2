package config

import "time"

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SessionCookie string        `yaml:"session_cookie"`
	VerifyRoleURL string        `yaml:"verify_role_url"`
	SignInPath    string        `yaml:"sign_in_path"`
	DeniedPath    string        `yaml:"denied_path"`
}

func loadAuthConfig() *AuthConfig {
	baseURL := getEnv("APP_BASE_URL", "http://localhost:8080")

	return &AuthConfig{
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
		SessionCookie: getEnv("SESSION_COOKIE_NAME", "session"),
		VerifyRoleURL: getEnv("AUTH_VERIFY_URL", baseURL+"/api/auth/verify-role"),
		SignInPath:    getEnv("AUTH_SIGN_IN_PATH", "/sign-in"),
		DeniedPath:    getEnv("AUTH_DENIED_PATH", "/unauthorized"),
	}
}
