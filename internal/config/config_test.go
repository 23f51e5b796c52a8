// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func productionConfig() *Config {
	return &Config{
		Environment: "production",
		Database:    DatabaseConfig{Password: "s3cret"},
		JWT:         JWTConfig{SecretKey: "a-real-secret"},
		Admin:       AdminConfig{Email: "admin@ecocupon.cl", Password: "a-real-password"},
		Knasta:      KnastaConfig{Mode: "live"},
	}
}

func TestValidateProduction(t *testing.T) {
	assert.NoError(t, productionConfig().Validate())
}

func TestValidateRejectsDefaultJWTSecretInProduction(t *testing.T) {
	cfg := productionConfig()
	cfg.JWT.SecretKey = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsDefaultAdminPasswordInProduction(t *testing.T) {
	cfg := productionConfig()
	cfg.Admin.Password = "admin123!@#"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsSimulatedModeInProduction(t *testing.T) {
	cfg := productionConfig()
	cfg.Knasta.Mode = "simulated"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownKnastaMode(t *testing.T) {
	cfg := productionConfig()
	cfg.Knasta.Mode = "replay"
	assert.Error(t, cfg.Validate())
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	cfg := &Config{
		Environment: "development",
		JWT:         JWTConfig{SecretKey: "your-secret-key-change-in-production"},
		Admin:       AdminConfig{Password: "admin123!@#"},
		Knasta:      KnastaConfig{Mode: "simulated"},
	}
	assert.NoError(t, cfg.Validate())
}
