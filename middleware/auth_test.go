package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUserID(t *testing.T) {
	id, err := extractUserID(jwt.MapClaims{"id": float64(42)})
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = extractUserID(jwt.MapClaims{"id": "17"})
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)

	_, err = extractUserID(jwt.MapClaims{"id": "not-a-number"})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{"id": true})
	assert.Error(t, err)
}

func TestExtractRole(t *testing.T) {
	role, err := extractRole(jwt.MapClaims{"role": "Patient"})
	require.NoError(t, err)
	assert.Equal(t, "Patient", role)

	// Legacy tokens carried the role as an object
	role, err = extractRole(jwt.MapClaims{"role": map[string]interface{}{"name": "Admin"}})
	require.NoError(t, err)
	assert.Equal(t, "Admin", role)

	_, err = extractRole(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = extractRole(jwt.MapClaims{"role": ""})
	assert.Error(t, err)

	_, err = extractRole(jwt.MapClaims{"role": 3})
	assert.Error(t, err)
}
