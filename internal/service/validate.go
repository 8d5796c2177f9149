package service

import (
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
)

const formatoData = time.DateOnly // "2006-01-02"

// parseData parses a date field, attributing failures to the field name.
func parseData(campo, valor string) (time.Time, error) {
	t, err := time.Parse(formatoData, valor)
	if err != nil {
		return time.Time{}, apierror.Validation(map[string]string{campo: "data invalida, use AAAA-MM-DD"})
	}
	return t, nil
}

// naoFutura rejects dates after today (acquisition and start dates).
func naoFutura(campo string, t time.Time) error {
	hoje := time.Now().Truncate(24 * time.Hour)
	if t.After(hoje.Add(24*time.Hour - time.Nanosecond)) {
		return apierror.Validation(map[string]string{campo: "data nao pode estar no futuro"})
	}
	return nil
}

// fimAposInicio enforces end >= start before anything reaches the database.
func fimAposInicio(inicio, fim time.Time) error {
	if fim.Before(inicio) {
		return apierror.Validation(map[string]string{"data_fim": "data final anterior a data inicial"})
	}
	return nil
}

func formatar(t time.Time) string { return t.Format(formatoData) }

func formatarPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(formatoData)
	return &s
}
