package dto

// ListQuery carries the query parameters shared by every list endpoint.
// search matches the entity's display name; search_field/search_value select
// an alternate column (e.g. numero_serie, cpf, matricula).
type ListQuery struct {
	Page            int    `form:"page,default=1" validate:"min=1"`
	Search          string `form:"search"`
	SearchField     string `form:"search_field"`
	SearchValue     string `form:"search_value"`
	Filial          string `form:"filial" validate:"omitempty,uuid"`
	Ativo           *bool  `form:"ativo"`
	SomenteAtivos   bool   `form:"somente_ativos"`
	SomenteInativos bool   `form:"somente_inativos"`

	// Limit is set server-side from config, never by the client.
	Limit int `form:"-"`

	// FiliaisPermitidas restricts results to these filiais. It is filled
	// server-side from the token claims for non-global tiers, never by
	// the client.
	FiliaisPermitidas []string `form:"-"`
}

// Pagina is the list envelope: results plus an absolute next-page URL,
// null on the last page.
type Pagina[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
}
