package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTokenRepo struct {
	tokens map[string]*entity.AuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*entity.AuthToken{}}
}

func (r *fakeTokenRepo) Create(token *entity.AuthToken) error {
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeTokenRepo) Exists(id string) (bool, error) {
	_, ok := r.tokens[id]
	return ok, nil
}

func (r *fakeTokenRepo) Delete(id string) error {
	delete(r.tokens, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "almacen-api-test"
)

func buildAuthUseCase() (*auth.AuthUseCase, *fakeUserRepo, *fakeTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	uc := auth.NewAuthUseCase(userRepo, tokenRepo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	return uc, userRepo, tokenRepo
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:                 "Ana Torres",
		Email:                "ana@example.com",
		Password:             "secreto123",
		PasswordConfirmation: "secreto123",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El registro crea el usuario con el password hasheado y emite un token
// verificable cuyo token_id tiene fila en el repositorio.
func TestRegister_OK(t *testing.T) {
	uc, userRepo, tokenRepo := buildAuthUseCase()

	out, err := uc.Register(validRegister())
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.NotEmpty(t, out.Token)

	// El password nunca se guarda en claro
	stored, _ := userRepo.GetByEmail("ana@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))

	// El JWT referencia una fila viva de auth_tokens
	userID, tokenID, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
	ok, _ := tokenRepo.Exists(tokenID)
	assert.True(t, ok)
}

func TestRegister_EmailDuplicadoRechazado(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	_, err = uc.Register(validRegister())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestRegister_ValidacionDeCampos(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	in := dto.RegisterRequest{
		Name:                 "",
		Email:                "no-es-un-email",
		Password:             "corto",
		PasswordConfirmation: "otra-cosa",
	}
	_, err := uc.Register(in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}

func TestRegister_ConfirmacionNoCoincide(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	in := validRegister()
	in.PasswordConfirmation = "diferente123"
	_, err := uc.Register(in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

// Email desconocido y password incorrecto devuelven el mismo error.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Cada login emite un token distinto (una sesión por token).
func TestLogin_EmiteTokensIndependientes(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	reg, err := uc.Register(validRegister())
	require.NoError(t, err)

	log1, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEqual(t, reg.Token, log1.Token)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

// El logout revoca SOLO el token de la sesión actual; los demás siguen vivos.
func TestLogout_RevocaSoloElTokenActual(t *testing.T) {
	uc, _, tokenRepo := buildAuthUseCase()
	reg, err := uc.Register(validRegister())
	require.NoError(t, err)
	log1, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)

	_, regTokenID, err := jwt.Parse(testSecret, reg.Token)
	require.NoError(t, err)
	_, logTokenID, err := jwt.Parse(testSecret, log1.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(logTokenID))

	ok, _ := tokenRepo.Exists(logTokenID)
	assert.False(t, ok, "el token de la sesión cerrada debe estar revocado")
	ok, _ = tokenRepo.Exists(regTokenID)
	assert.True(t, ok, "los demás tokens del usuario siguen vigentes")
}
