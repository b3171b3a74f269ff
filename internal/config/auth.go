package config

import (
	"fmt"
	"os"
	"strconv"
)

// AuthConfig holds the process-wide auth parameters: the token signing
// secret and the bcrypt work factor. Both are constant for the process
// lifetime and passed into the services at construction.
type AuthConfig struct {
	SecretKey   string
	BcryptCost  int
	JWTExpHours int64
}

// LoadAuthConfig loads auth configuration from environment variables.
// A missing JWT_SECRET_KEY is an error; callers treat it as fatal at startup.
func LoadAuthConfig() (*AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	cfg := &AuthConfig{
		SecretKey:   secret,
		BcryptCost:  12,
		JWTExpHours: 24,
	}

	if costStr := os.Getenv("BCRYPT_WORK_FACTOR"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_WORK_FACTOR %q: %w", costStr, err)
		}
		cfg.BcryptCost = cost
	}

	if expStr := os.Getenv("JWT_EXPIRATION_HOURS"); expStr != "" {
		exp, err := strconv.ParseInt(expStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", expStr, err)
		}
		cfg.JWTExpHours = exp
	}

	return cfg, nil
}
