package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
)

const testSecret = "segredo-de-teste-com-32-caracteres!"

func signToken(t *testing.T, tipo model.TipoAcesso, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":     uuid.NewString(),
		"nome":        "Ana",
		"tipo_acesso": string(tipo),
		"filiais":     []string{uuid.NewString()},
		"exp":         time.Now().Add(dur).Unix(),
		"iat":         time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/protegido", func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"nome": claims.Nome, "tipo": string(claims.TipoAcesso)})
	})
	r.GET("/usuarios", RequireGerenciaUsuarios(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAceitaTokenValido(t *testing.T) {
	r := protectedRouter()

	w := doGet(r, "/protegido", signToken(t, model.AcessoCoordenador, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ana", body["nome"])
	assert.Equal(t, "COORDENADOR", body["tipo"])
}

func TestJWTAuthRejeitaSemToken(t *testing.T) {
	w := doGet(protectedRouter(), "/protegido", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp apierror.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierror.CodeUnauthorized, resp.Code)
}

func TestJWTAuthRejeitaTokenExpirado(t *testing.T) {
	w := doGet(protectedRouter(), "/protegido", signToken(t, model.AcessoMaximo, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejeitaAssinaturaErrada(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id":     uuid.NewString(),
		"tipo_acesso": "MAXIMO",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outro-segredo"))
	require.NoError(t, err)

	w := doGet(protectedRouter(), "/protegido", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejeitaTipoDesconhecido(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id":     uuid.NewString(),
		"tipo_acesso": "SUPREMO",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doGet(protectedRouter(), "/protegido", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireGerenciaUsuarios(t *testing.T) {
	r := protectedRouter()

	// Coordenador nao gerencia usuarios.
	w := doGet(r, "/usuarios", signToken(t, model.AcessoCoordenador, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(r, "/usuarios", signToken(t, model.AcessoAdministrador, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/usuarios", signToken(t, model.AcessoMaximo, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}
