package handler

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// respondError writes the apierror envelope with its mapped status.
func respondError(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	c.JSON(apiErr.Status(), apiErr)
}

// bindAndValidate binds the JSON body into T and runs struct validation,
// answering 422 with per-field errors on failure.
func bindAndValidate[T any](c *gin.Context, v *validator.Validate) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.New(apierror.CodeValidation, "Corpo da requisicao invalido"))
		return nil, false
	}
	if err := v.Struct(&req); err != nil {
		respondError(c, apierror.Validation(validationFields(err)))
		return nil, false
	}
	return &req, true
}

// validationFields flattens validator errors into the field->message map of
// the error envelope. Field names are converted to their snake_case JSON form.
func validationFields(err error) map[string]string {
	fields := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = "invalido"
		return fields
	}
	for _, fe := range verrs {
		fields[toSnake(fe.Field())] = fe.Tag()
	}
	return fields
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// bindListQuery parses the shared list parameters; the page size always comes
// from server config, never from the client. For non-global tiers the query
// is scoped to the filiais carried by the token: an explicit filial filter
// outside that set is refused, and the absence of one defaults to the set.
func bindListQuery(c *gin.Context, pageSize int) (dto.ListQuery, bool) {
	var lq dto.ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		respondError(c, apierror.New(apierror.CodeValidation, "Parametros de listagem invalidos"))
		return lq, false
	}
	if lq.Page < 1 {
		lq.Page = 1
	}
	lq.Limit = pageSize
	if claims, ok := middleware.GetClaims(c); ok && !claims.TipoAcesso.AcessoGlobal() {
		if lq.Filial != "" {
			fid, err := uuid.Parse(lq.Filial)
			if err != nil || !claims.TipoAcesso.PodeVerFilial(claims.Filiais, fid) {
				respondError(c, apierror.New(apierror.CodeForbidden, "Acesso negado a esta filial"))
				return lq, false
			}
		}
		permitidas := make([]string, len(claims.Filiais))
		for i, id := range claims.Filiais {
			permitidas[i] = id.String()
		}
		lq.FiliaisPermitidas = permitidas
	}
	return lq, true
}

// filialVisivel applies the same scope to a single fetched record.
func filialVisivel(c *gin.Context, filialID string) bool {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.TipoAcesso.AcessoGlobal() {
		return true
	}
	fid, err := uuid.Parse(filialID)
	if err != nil {
		return false
	}
	return claims.TipoAcesso.PodeVerFilial(claims.Filiais, fid)
}

// idParam parses the {id} path segment.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.New(apierror.CodeNotFound, "Identificador invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// previewParam reports whether ?preview=true was requested on a desativar
// call (dry run: validate the cascade without applying it).
func previewParam(c *gin.Context) bool {
	return c.Query("preview") == "true"
}

// pagina wraps results in the list envelope. next is an absolute URL to the
// following page, or null on the last one.
func pagina[T any](c *gin.Context, baseURL string, lq dto.ListQuery, results []T, total int64) dto.Pagina[T] {
	out := dto.Pagina[T]{Results: results}
	if int64(lq.Page*lq.Limit) < total {
		q := c.Request.URL.Query()
		q.Set("page", fmt.Sprintf("%d", lq.Page+1))
		next := fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), c.Request.URL.Path, q.Encode())
		out.Next = &next
	}
	return out
}
