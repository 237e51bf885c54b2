package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"clinicore/config"
	"clinicore/services/booking"
	"clinicore/services/tasks"
)

// InitSweepWorker starts the background worker and the scheduler that
// enqueues the nightly no-show sweep. The sweep cancels SCHEDULED
// appointments whose date has passed so yesterday's no-shows stop looking
// like open business.
func InitSweepWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNoShowSweep, handleSweepTask(bookingSvc))

	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler registers the cron entry that enqueues the sweep task.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})

	task, err := tasks.NewNoShowSweepTask()
	if err != nil {
		log.Printf("[SweepWorker] failed to build sweep task: %v", err)
		return
	}
	if _, err := scheduler.Register(config.AppConfig.NoShowSweepCron, task); err != nil {
		log.Printf("[SweepWorker] failed to register sweep schedule: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[SweepWorker] scheduler stopped: %v", err)
	}
}

func handleSweepTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		swept, err := bookingSvc.SweepNoShows(ctx)
		if err != nil {
			log.Printf("[SweepWorker] sweep failed: %v", err)
			return err
		}
		log.Printf("[SweepWorker] sweep complete, cancelled %d stale appointments", swept)
		return nil
	}
}
