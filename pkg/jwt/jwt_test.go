package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "negocio-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "employee", "negocio-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "employee", "negocio-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "negocio-api", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

func TestParse_SinUsuario(t *testing.T) {
	token, err := jwt.Generate("secreto", "", "admin", "negocio-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.ErrorIs(t, err, jwt.ErrNoUser)
}

func TestParse_SubjectComoUsuario(t *testing.T) {
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   "user-9",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secreto"))
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
	assert.Empty(t, role)
}

func TestParse_RechazaOtroAlgoritmoYSinVencimiento(t *testing.T) {
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute))},
		UserID:           "user-1",
	}).SignedString([]byte("secreto"))
	require.NoError(t, err)
	_, _, err = jwt.Parse("secreto", hs512)
	assert.Error(t, err)

	sinExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{UserID: "user-1"}).SignedString([]byte("secreto"))
	require.NoError(t, err)
	_, _, err = jwt.Parse("secreto", sinExp)
	assert.Error(t, err)
}
