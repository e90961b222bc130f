// Package job runs background work on Asynq, a Redis-backed task queue.
//
// Two tasks exist: removing an asset from the asset host after its document
// was deleted, and e-mailing the couple when a guest RSVPs.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/wedding-backend/internal/config"
	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/deppfellow/wedding-backend/internal/lib/email"
	"github.com/deppfellow/wedding-backend/internal/lib/media"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService enqueues tasks and runs the workers that process them.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	email       *email.Client
	media       media.Host
	notifyEmail string
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config, emailClient *email.Client, host media.Host) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
			Logger: &asynqLogger{logger: logger},
		},
	)

	notifyEmail := ""
	if cfg.RSVPNotificationsEnabled() {
		notifyEmail = cfg.Integration.NotifyEmail
	}

	return &JobService{
		Client:      client,
		server:      server,
		logger:      logger,
		email:       emailClient,
		media:       host,
		notifyEmail: notifyEmail,
	}
}

// Start registers the task handlers and starts the workers in the
// background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDeleteAsset, j.handleDeleteAssetTask)
	mux.HandleFunc(TaskRSVPEmail, j.handleRSVPEmailTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// EnqueueAssetDeletion schedules removal of an asset from the asset host.
func (j *JobService) EnqueueAssetDeletion(ctx context.Context, key, resourceType string) error {
	task, err := NewDeleteAssetTask(key, resourceType)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}

// EnqueueRSVPNotification schedules the RSVP e-mail. It is a no-op when
// notifications are not configured.
func (j *JobService) EnqueueRSVPNotification(ctx context.Context, rsvp RSVPEmailPayload) error {
	if j.notifyEmail == "" {
		return nil
	}

	task, err := NewRSVPEmailTask(rsvp)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}

func (j *JobService) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errs.NewUpstreamError(errs.ServiceQueue, fmt.Errorf("enqueue %s: %w", task.Type(), err))
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("type", task.Type()).
		Str("queue", info.Queue).
		Msg("task enqueued")

	return nil
}

// asynqLogger routes asynq's own logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
