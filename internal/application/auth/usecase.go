package auth

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
// Cada token emitido tiene una fila en auth_tokens; logout borra solo la fila
// del token usado en la petición actual.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenRepo: tokenRepo, jwtCfg: jwtCfg}
}

// Register valida los campos, crea el usuario con password hasheado (bcrypt)
// y emite un bearer token. Errores de campo se devuelven agrupados en un
// ValidationError (incluida la unicidad del email).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "el nombre es requerido")
	} else if len(in.Name) > 50 {
		verr.Add("name", "el nombre no puede exceder 50 caracteres")
	}
	if in.Email == "" {
		verr.Add("email", "el email es requerido")
	} else {
		if len(in.Email) > 60 {
			verr.Add("email", "el email no puede exceder 60 caracteres")
		}
		if _, err := mail.ParseAddress(in.Email); err != nil {
			verr.Add("email", "el email no es válido")
		}
	}
	if len(in.Password) < 8 || len(in.Password) > 30 {
		verr.Add("password", "el password debe tener entre 8 y 30 caracteres")
	}
	if in.Password != in.PasswordConfirmation {
		verr.Add("password", "la confirmación del password no coincide")
	}
	if !verr.HasErrors() {
		existing, err := uc.userRepo.GetByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			verr.Add("email", "el email ya está registrado")
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login verifica email/password y emite un token nuevo. Email desconocido y
// password incorrecto devuelven el mismo error (no se filtra cuál falló).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

// Logout revoca el token de la petición actual. Los demás tokens del usuario
// siguen vigentes.
func (uc *AuthUseCase) Logout(tokenID string) error {
	return uc.tokenRepo.Delete(tokenID)
}

// issueToken persiste la fila del token y firma el JWT que la referencia.
func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token := &entity.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      "api-token",
		CreatedAt: time.Now(),
	}
	if err := uc.tokenRepo.Create(token); err != nil {
		return nil, err
	}
	signed, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, token.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toUserResponse(user), Token: signed}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
