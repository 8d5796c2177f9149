package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	queueLembretes = "toolcare:lembretes"
	maxTentativas  = 3
)

// LembreteJob is one overdue-loan reminder waiting in the redis queue.
type LembreteJob struct {
	EmprestimoID    string `json:"emprestimo_id"`
	EmprestimoNome  string `json:"emprestimo_nome"`
	FerramentaNome  string `json:"ferramenta_nome"`
	FuncionarioNome string `json:"funcionario_nome"`
	DataPrevista    string `json:"data_prevista"`
	Tentativas      int    `json:"tentativas"`
}

// Dispatcher pushes jobs onto the queue.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) Enqueue(ctx context.Context, job LembreteJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queueLembretes, raw).Err()
}

// Handler processes one job; a returned error triggers a retry.
type Handler func(ctx context.Context, job LembreteJob) error

// StartWorkerPool runs size workers draining the queue until ctx is done.
// Jobs that exhaust their retries land in the dead letter queue.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, size int, handle Handler) {
	for i := 0; i < size; i++ {
		go runWorker(ctx, rdb, i, handle)
	}
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handle Handler) {
	logger := log.With().Int("worker", id).Logger()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := rdb.BRPop(ctx, 5*time.Second, queueLembretes).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			logger.Warn().Err(err).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		// BRPOP returns [key, value].
		if len(res) != 2 {
			continue
		}

		var job LembreteJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			logger.Error().Err(err).Str("payload", res[1]).Msg("malformed job dropped")
			continue
		}

		if err := handle(ctx, job); err != nil {
			job.Tentativas++
			if job.Tentativas >= maxTentativas {
				logger.Error().Err(err).Str("emprestimo", job.EmprestimoID).Msg("job moved to DLQ")
				pushDLQ(ctx, rdb, job, err)
				continue
			}
			logger.Warn().Err(err).Int("tentativa", job.Tentativas).Msg("job requeued")
			if raw, merr := json.Marshal(job); merr == nil {
				rdb.LPush(ctx, queueLembretes, raw)
			}
			continue
		}
		logger.Info().Str("emprestimo", job.EmprestimoID).Msg("lembrete enviado")
	}
}
