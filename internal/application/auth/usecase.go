package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminSeed credenciales del administrador por defecto.
type AdminSeed struct {
	Email    string
	Password string
}

// AuthUseCase casos de uso de autenticación: login, perfil propio y admin inicial.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login acepta email o nombre de usuario. Usuario inexistente o password incorrecto -> ErrUnauthorized;
// usuario inactivo -> ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		user *entity.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = uc.userRepo.GetByEmail(ctx, login)
	} else {
		user, err = uc.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		return nil, domain.Storage("buscar usuario", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Profile datos del usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Storage("leer usuario", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile nombre, teléfono y email del propio usuario; rol y estado no se tocan.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Storage("leer usuario", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && !strings.EqualFold(*in.Email, user.Email) {
		existing, err := uc.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, domain.Storage("buscar usuario", err)
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, domain.Storage("actualizar perfil", err)
	}
	return ToUserResponse(user), nil
}

// EnsureDefaultAdmin crea el administrador por defecto si no existe ningún admin activo.
// Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	if seed.Email == "" || seed.Password == "" {
		return false, nil
	}
	n, err := uc.userRepo.CountAdmins(ctx)
	if err != nil {
		return false, domain.Storage("contar administradores", err)
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        seed.Email,
		PasswordHash: string(hash),
		FirstName:    "Administrador",
		LastName:     "Sistema",
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return false, domain.Storage("crear administrador", err)
	}
	log.Info().Str("email", seed.Email).Msg("administrador por defecto creado")
	return true, nil
}

// ToUserResponse mapea el usuario sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
