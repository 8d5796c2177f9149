package middleware

import (
	"strings"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const claimsKey = "claims"

// JWTClaims is the authenticated identity attached to the request context.
type JWTClaims struct {
	UserID     uuid.UUID
	Nome       string
	TipoAcesso model.TipoAcesso
	Filiais    []uuid.UUID
}

// JWTAuth validates the Bearer token and stores the parsed claims.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, apierror.New(apierror.CodeUnauthorized, "Token de acesso ausente"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abort(c, apierror.New(apierror.CodeUnauthorized, "Token invalido ou expirado"))
			return
		}

		mapClaims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, apierror.New(apierror.CodeUnauthorized, "Token mal formado"))
			return
		}
		claims, err := parseClaims(mapClaims)
		if err != nil {
			abort(c, apierror.New(apierror.CodeUnauthorized, "Token mal formado"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireGerenciaUsuarios guards the user management surface.
func RequireGerenciaUsuarios() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || !claims.TipoAcesso.PodeGerenciarUsuarios() {
			abort(c, apierror.New(apierror.CodeForbidden, "Acesso restrito a administradores"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the authenticated identity set by JWTAuth.
func GetClaims(c *gin.Context) (*JWTClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*JWTClaims)
	return claims, ok
}

func parseClaims(m jwt.MapClaims) (*JWTClaims, error) {
	userIDStr, _ := m["user_id"].(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	nome, _ := m["nome"].(string)
	tipoStr, _ := m["tipo_acesso"].(string)
	tipo := model.TipoAcesso(tipoStr)
	if !tipo.Valido() {
		return nil, jwt.ErrTokenInvalidClaims
	}

	var filiais []uuid.UUID
	if raw, ok := m["filiais"].([]interface{}); ok {
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				continue
			}
			id, err := uuid.Parse(s)
			if err != nil {
				continue
			}
			filiais = append(filiais, id)
		}
	}

	return &JWTClaims{UserID: uid, Nome: nome, TipoAcesso: tipo, Filiais: filiais}, nil
}

func abort(c *gin.Context, err *apierror.Error) {
	c.AbortWithStatusJSON(err.Status(), err)
}
