package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeNoShowSweep = "appointment:noshow_sweep"

// SweepPayload carries the enqueue time for traceability; the sweep itself
// derives its cutoff from the clock when it runs.
type SweepPayload struct {
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

func NewNoShowSweepTask() (*asynq.Task, error) {
	b, err := json.Marshal(SweepPayload{EnqueuedAt: time.Now()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNoShowSweep, b), nil
}
