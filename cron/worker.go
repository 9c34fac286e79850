package cron

import (
	"context"
	"log"
	"time"

	"slotwise/config"
	availabilityRepo "slotwise/database/repository/availability"

	"github.com/hibiken/asynq"
)

const TypeTimeOffPrune = "timeoff:prune"

// InitPruneWorker runs the async worker in background and schedules the
// periodic task that removes one-time records whose date range has elapsed.
func InitPruneWorker(repo availabilityRepo.AvailabilityRepository) {
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
	mux.HandleFunc(TypeTimeOffPrune, handlePruneTask(repo))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	// Run nightly shortly after midnight UTC.
	if _, err := scheduler.Register("5 0 * * *", asynq.NewTask(TypeTimeOffPrune, nil)); err != nil {
		log.Printf("[PruneWorker] failed to register schedule: %v", err)
	}

	go func() {
		log.Println("[PruneWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PruneWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PruneWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[PruneWorker] scheduler stopped: %v", err)
		}
	}()
}

func handlePruneTask(repo availabilityRepo.AvailabilityRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		before := time.Now().UTC().Format("2006-01-02")
		removed, err := repo.DeleteElapsedTimeOff(ctx, before)
		if err != nil {
			log.Printf("[PruneHandler] failed to prune elapsed time off: %v", err)
			return err
		}
		if removed > 0 {
			log.Printf("[PruneHandler] removed %d elapsed time off records", removed)
		}
		return nil
	}
}
