package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const queueDLQ = "toolcare:lembretes:dlq"

// dlqEntry wraps a dead job with its failure context for later inspection.
type dlqEntry struct {
	Job      LembreteJob `json:"job"`
	Erro     string      `json:"erro"`
	FalhouEm time.Time   `json:"falhou_em"`
}

func pushDLQ(ctx context.Context, rdb *redis.Client, job LembreteJob, cause error) {
	raw, err := json.Marshal(dlqEntry{Job: job, Erro: cause.Error(), FalhouEm: time.Now()})
	if err != nil {
		return
	}
	if err := rdb.LPush(ctx, queueDLQ, raw).Err(); err != nil {
		log.Error().Err(err).Msg("DLQ push failed")
	}
}

// ReprocessDLQ moves every dead job back onto the main queue with its retry
// counter reset. Meant for operator use after the underlying failure is fixed.
func ReprocessDLQ(ctx context.Context, rdb *redis.Client) (int, error) {
	moved := 0
	for {
		raw, err := rdb.RPop(ctx, queueDLQ).Result()
		if err == redis.Nil {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		var entry dlqEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Warn().Str("payload", raw).Msg("malformed DLQ entry dropped")
			continue
		}
		entry.Job.Tentativas = 0
		if job, err := json.Marshal(entry.Job); err == nil {
			if err := rdb.LPush(ctx, queueLembretes, job).Err(); err != nil {
				return moved, err
			}
			moved++
		}
	}
}
