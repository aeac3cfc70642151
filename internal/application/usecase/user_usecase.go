package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

// UserUseCase gestión de usuarios y login. El ID del usuario autenticado
// viaja como actorID explícito hacia las mutaciones; no hay usuario global.
type UserUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   pkgjwt.Config
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, jwtCfg pkgjwt.Config) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite un JWT con userID y rol.
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.jwtCfg, user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CreateUserInput datos para alta de usuario.
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

// Create da de alta un usuario con la contraseña hasheada (bcrypt).
func (uc *UserUseCase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleBodeguero {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		Status:       entity.UserStatusActive,
	}
	id, err := uc.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// GetByID devuelve un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.userRepo.List(limit, offset)
}
