package worker

import (
	"context"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// StartOverdueCron scans for open loans past their expected return date and
// enqueues a reminder for each, once per interval.
func StartOverdueCron(ctx context.Context, repo repository.EmprestimoRepository, d *Dispatcher, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// First pass at startup so a restart never skips a day.
		scanOverdue(ctx, repo, d)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scanOverdue(ctx, repo, d)
			}
		}
	}()
}

func scanOverdue(ctx context.Context, repo repository.EmprestimoRepository, d *Dispatcher) {
	vencidos, err := repo.ListVencidos(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("overdue scan failed")
		return
	}
	for _, e := range vencidos {
		job := LembreteJob{
			EmprestimoID:   e.ID.String(),
			EmprestimoNome: e.Nome,
			DataPrevista:   e.DataPrevista.Format(time.DateOnly),
		}
		if e.Ferramenta != nil {
			job.FerramentaNome = e.Ferramenta.Nome
		}
		if e.Funcionario != nil {
			job.FuncionarioNome = e.Funcionario.Nome
		}
		if err := d.Enqueue(ctx, job); err != nil {
			log.Error().Err(err).Str("emprestimo", job.EmprestimoID).Msg("enqueue failed")
		}
	}
	if len(vencidos) > 0 {
		log.Info().Int("total", len(vencidos)).Msg("lembretes de atraso enfileirados")
	}
}
