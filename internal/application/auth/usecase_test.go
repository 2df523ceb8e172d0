package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/auth"
	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
	"github.com/jhoicas/negocio-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 10, Issuer: "negocio-api"}

func TestEnsureDefaultAdmin_SoloUnaVez(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg)
	ctx := context.Background()
	seed := auth.AdminSeed{Email: "admin@negocio.com", Password: "admin12345"}

	created, err := uc.EnsureDefaultAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureDefaultAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)

	n, err := store.Users().CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLogin_PorEmailYUsuario(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg)
	ctx := context.Background()
	_, err := uc.EnsureDefaultAdmin(ctx, auth.AdminSeed{Email: "admin@negocio.com", Password: "admin12345"})
	require.NoError(t, err)

	for _, login := range []string{"admin@negocio.com", "admin"} {
		res, err := uc.Login(ctx, dto.LoginRequest{Login: login, Password: "admin12345"})
		require.NoError(t, err, login)
		userID, role, err := jwt.Parse(jwtCfg.Secret, res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, userID)
		assert.Equal(t, entity.RoleAdmin, role)
	}
}

func TestLogin_Errores(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg)
	ctx := context.Background()
	_, err := uc.EnsureDefaultAdmin(ctx, auth.AdminSeed{Email: "admin@negocio.com", Password: "admin12345"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "nadie@negocio.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	admin, err := store.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	admin.Status = entity.UserStatusInactive
	require.NoError(t, store.Users().Update(ctx, admin))

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "admin", Password: "admin12345"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestActualizarPerfil(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg)
	ctx := context.Background()
	_, err := uc.EnsureDefaultAdmin(ctx, auth.AdminSeed{Email: "admin@negocio.com", Password: "admin12345"})
	require.NoError(t, err)
	admin, err := store.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)

	phone := "3001234567"
	out, err := uc.UpdateProfile(ctx, admin.ID, dto.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.Phone)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	_, err = uc.Profile(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
