package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	InitValidator()

	type payload struct {
		Title string `validate:"required,notblank"`
	}

	assert.NoError(t, Validate.Struct(payload{Title: "Phở bò"}))
	assert.Error(t, Validate.Struct(payload{Title: "   "}))
	assert.Error(t, Validate.Struct(payload{Title: ""}))
}

func TestGetConfig_EnvOverridesFile(t *testing.T) {
	config.JWTSecret = "from-file"
	t.Cleanup(func() { config.JWTSecret = "" })

	assert.Equal(t, "from-file", GetConfig("JWT_SECRET"))

	t.Setenv("JWT_SECRET", "from-env")
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
}

func TestGetConfigOr(t *testing.T) {
	t.Setenv("APP_PORT", "")
	assert.Equal(t, "8080", GetConfigOr("APP_PORT", "8080"))
}
