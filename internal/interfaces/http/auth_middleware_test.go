package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTokenID   = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "almacen-api-test"
	testExpMin    = 60
)

type fakeTokenRepo struct {
	tokens map[string]bool
}

func (r *fakeTokenRepo) Create(token *entity.AuthToken) error {
	r.tokens[token.ID] = true
	return nil
}

func (r *fakeTokenRepo) Exists(id string) (bool, error) {
	return r.tokens[id], nil
}

func (r *fakeTokenRepo) Delete(id string) error {
	delete(r.tokens, id)
	return nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y verificar que no esté revocado
//   - Un handler dummy que devuelve los locals si pasa el middleware
func buildTestApp(tokenRepo *fakeTokenRepo) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, tokenRepo),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"user_id":  apphttp.GetUserID(c),
				"token_id": apphttp.GetTokenID(c),
			})
		},
	)
	return app
}

// issuedToken genera un JWT y registra su fila en el repo de tokens.
func issuedToken(t *testing.T, repo *fakeTokenRepo) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTokenID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	repo.tokens[testTokenID] = true
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Token válido y vigente → pasa y carga los locals.
func TestAuthMiddleware_TokenValidoPasa(t *testing.T) {
	repo := &fakeTokenRepo{tokens: map[string]bool{}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, issuedToken(t, repo))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"], "user_id debe venir de los claims")
	assert.Equal(t, testTokenID, body["token_id"], "token_id debe venir de los claims")
}

// Caso 2: Sin Authorization header → 401.
func TestAuthMiddleware_SinHeaderRechazado(t *testing.T) {
	repo := &fakeTokenRepo{tokens: map[string]bool{}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: Formato distinto de "Bearer <token>" → 401.
func TestAuthMiddleware_FormatoInvalidoRechazado(t *testing.T) {
	repo := &fakeTokenRepo{tokens: map[string]bool{}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: Token firmado con otro secreto → 401.
func TestAuthMiddleware_FirmaInvalidaRechazada(t *testing.T) {
	repo := &fakeTokenRepo{tokens: map[string]bool{}}
	app := buildTestApp(repo)

	tok, err := pkgjwt.Generate("otro-secreto", testUserID, testTokenID, testIssuer, testExpMin)
	require.NoError(t, err)
	repo.tokens[testTokenID] = true

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token bien firmado pero revocado (sin fila en auth_tokens) → 401.
// Es el comportamiento post-logout.
func TestAuthMiddleware_TokenRevocadoRechazado(t *testing.T) {
	repo := &fakeTokenRepo{tokens: map[string]bool{}}
	app := buildTestApp(repo)

	header := issuedToken(t, repo)
	require.NoError(t, repo.Delete(testTokenID)) // logout

	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

// Caso 6: Token expirado → 401.
func TestAuthMiddleware_TokenExpiradoRechazado(t *testing.T) {
	repo := &fakeTokenRepo{tokens: map[string]bool{}}
	app := buildTestApp(repo)

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTokenID, testIssuer, -1)
	require.NoError(t, err)
	repo.tokens[testTokenID] = true

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
