package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/pkg/config"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%harina%", likePattern(" harina "))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}

func TestNullIfZero(t *testing.T) {
	assert.Nil(t, nullIfZero(0))
	assert.Nil(t, nullIfZero(-1))
	n := nullIfZero(20)
	if assert.NotNil(t, n) {
		assert.Equal(t, 20, *n)
	}
}

func TestBuildPoolConfig(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "secreto", DBName: "negocio", SSLMode: "disable", MaxConns: 8}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "negocio", pc.ConnConfig.Database)
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "5s", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_RespetaParametrosDeURL(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@h:5433/x?sslmode=disable&application_name=otro&lock_timeout=1s"}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "otro", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "1s", pc.ConnConfig.RuntimeParams["lock_timeout"])
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@h:puerto/x"})
	assert.Error(t, err)
}
