package repository

import (
	"github.com/alexhcferreira/toolcare-backend/internal/dto"

	"gorm.io/gorm"
)

// aplicarAtivo applies the activity query params to a boolean "ativo" column.
// somente_ativos / somente_inativos win over the raw ativo param.
func aplicarAtivo(q *gorm.DB, lq dto.ListQuery) *gorm.DB {
	switch {
	case lq.SomenteAtivos:
		return q.Where("ativo = true")
	case lq.SomenteInativos:
		return q.Where("ativo = false")
	case lq.Ativo != nil:
		return q.Where("ativo = ?", *lq.Ativo)
	}
	return q
}

// aplicarBusca applies free-text search. The default column answers "search";
// "search_field"/"search_value" select an alternate column from the
// whitelist. Unknown fields are ignored rather than leaking column names
// into SQL.
func aplicarBusca(q *gorm.DB, lq dto.ListQuery, padrao string, colunas map[string]string) *gorm.DB {
	if lq.Search != "" {
		q = q.Where(padrao+" ILIKE ?", "%"+lq.Search+"%")
	}
	if lq.SearchField != "" && lq.SearchValue != "" {
		if col, ok := colunas[lq.SearchField]; ok {
			q = q.Where(col+" ILIKE ?", "%"+lq.SearchValue+"%")
		}
	}
	return q
}

// paginar counts the filtered set and fetches one page.
// Returns rows plus the total so handlers can decide whether a next page
// exists (page*limit < total).
func paginar[T any](q *gorm.DB, lq dto.ListQuery, ordem string) ([]T, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []T
	offset := (lq.Page - 1) * lq.Limit
	err := q.Order(ordem).Offset(offset).Limit(lq.Limit).Find(&rows).Error
	return rows, total, err
}
