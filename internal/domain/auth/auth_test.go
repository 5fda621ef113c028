package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Login: "budi.santoso", Password: "rahasia123"}
	assert.NoError(t, req.Validate())

	req = LoginRequest{}
	err := req.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "login is required")
	assert.Contains(t, err.Error(), "password is required")
}
