package utils

import (
	"testing"
	"time"

	"brewpair/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("user-1", entity.RoleAdmin, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = ParseToken(tok, "other")
	assert.Error(t, err)
}

func TestTokenRejectsUnknownRole(t *testing.T) {
	_, err := GenerateToken("user-1", entity.Role("owner"), "secret", time.Hour)
	assert.Error(t, err)

	// a token signed elsewhere with a role we do not know
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "user-1",
		Role:   entity.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := forged.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken(s, "secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tok, err := GenerateToken("user-1", entity.RoleCustomer, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(tok, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Gloria Jeans":        "gloria-jeans",
		"  Café  Olé! ":       "cafe-ole",
		"Brew & Bake Co.":     "brew-and-bake-co",
		"Kaffeehaus Müller":   "kaffeehaus-muller",
		"---":                 "",
		"Already-a-slug-2024": "already-a-slug-2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}

	assert.True(t, ValidSlug("gloria-jeans-p88f"))
	assert.False(t, ValidSlug("Gloria Jeans"))
	assert.False(t, ValidSlug("-lead"))
}
