package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

func newUserRequest(username, email string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username:  username,
		Email:     email,
		Password:  "secreta123",
		FirstName: "Ana",
		LastName:  "Pérez",
	}
}

func TestRegistrarUsuario_Duplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u, err := uc.Register(ctx, newUserRequest("ana", "ana@negocio.com"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, u.Role)

	_, err = uc.Register(ctx, newUserRequest("ana2", "ANA@negocio.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Register(ctx, newUserRequest("ana", "otra@negocio.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCambiarPassword_Minimo8(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	u, err := uc.Register(ctx, newUserRequest("luis", "luis@negocio.com"))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.ChangePassword(ctx, u.ID, "corta"), domain.ErrInvalidInput)
	assert.NoError(t, uc.ChangePassword(ctx, u.ID, "mas-larga-123"))
	assert.ErrorIs(t, uc.ChangePassword(ctx, "no-existe", "mas-larga-123"), domain.ErrUserNotFound)
}

func TestEliminarUsuario_NoASiMismo(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	admin, err := uc.Register(ctx, dto.CreateUserRequest{Username: "jefe", Email: "jefe@negocio.com", Password: "secreta123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	emp, err := uc.Register(ctx, newUserRequest("caja1", "caja1@negocio.com"))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, admin.ID, admin.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, admin.ID, emp.ID))

	got, err := uc.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, got.Status)
}

func TestActualizarUsuario_RolInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	u, err := uc.Register(ctx, newUserRequest("eva", "eva@negocio.com"))
	require.NoError(t, err)

	role := "superuser"
	_, err = uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	role = entity.RoleAdmin
	out, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}
