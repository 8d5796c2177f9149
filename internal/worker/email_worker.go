package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Sender is implemented by infra.Mailer.
type Sender interface {
	Send(to, subject, body string) error
}

// NewLembreteHandler builds the handler that mails an overdue-loan reminder.
// With no notify address configured the job is acknowledged and skipped.
func NewLembreteHandler(mailer Sender, notifyEmail string) Handler {
	return func(_ context.Context, job LembreteJob) error {
		if notifyEmail == "" {
			log.Debug().Str("emprestimo", job.EmprestimoID).Msg("lembrete sem destinatario configurado")
			return nil
		}
		subject := fmt.Sprintf("Emprestimo atrasado: %s", job.FerramentaNome)
		body := fmt.Sprintf(
			"O emprestimo %q da ferramenta %q para %s tinha devolucao prevista em %s e segue em aberto.",
			job.EmprestimoNome, job.FerramentaNome, job.FuncionarioNome, job.DataPrevista,
		)
		return mailer.Send(notifyEmail, subject, body)
	}
}
