package worker

import (
	"PriVault/config"
	"PriVault/internal/logger"
	"PriVault/internal/mq"
	"PriVault/internal/repo"
	"PriVault/internal/task"
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

type dlqMessage struct {
	TaskID   uint64    `json:"task_id"`
	Attempt  int       `json:"attempt"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// RunCleanupWorker consumes orphan-cleanup tasks from RabbitMQ.
func RunCleanupWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueTasks,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	concurrency := config.AppConfig.CleanupWorkerConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	burst := config.AppConfig.CleanupBurst
	if burst <= 0 {
		burst = 1
	}
	rateLimit := config.AppConfig.CleanupRate
	var limiter *rate.Limiter
	if rateLimit <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("cleanup worker: delivery channel closed")
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleCleanupMessage(ctx, client, limiter, d)
			}(delivery)
		}
	}
}

func handleCleanupMessage(ctx context.Context, client *mq.Client, limiter *rate.Limiter, delivery amqp.Delivery) {
	var msg task.CleanupMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		logger.Error("cleanup worker: invalid message", "err", err)
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	if err := task.ProcessCleanupTask(ctx, msg.TaskID); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		if err := scheduleRetry(ctx, client, msg, err); err != nil {
			logger.Error("cleanup worker: retry schedule failed", "task_id", msg.TaskID, "err", err)
			_ = delivery.Nack(false, true)
			return
		}
		_ = delivery.Ack(false)
		return
	}
	_ = delivery.Ack(false)
}

// scheduleRetry republishes with a delay, or dead-letters once the retry
// limit is reached.
func scheduleRetry(ctx context.Context, client *mq.Client, msg task.CleanupMessage, cause error) error {
	attempt := msg.Attempt + 1
	if attempt > config.AppConfig.CleanupRetryMax {
		_ = repo.CleanupTasks.MarkFailed(ctx, msg.TaskID, cause)
		dlq := dlqMessage{
			TaskID:   msg.TaskID,
			Attempt:  msg.Attempt,
			Error:    cause.Error(),
			FailedAt: time.Now(),
		}
		body, err := json.Marshal(dlq)
		if err != nil {
			return err
		}
		logger.Warn("cleanup worker: task dead-lettered", "task_id", msg.TaskID, "err", cause)
		return client.PublishDLQ(ctx, body)
	}

	_ = repo.CleanupTasks.MarkRetrying(ctx, msg.TaskID, attempt, cause)
	next := task.CleanupMessage{TaskID: msg.TaskID, Attempt: attempt}
	body, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return client.PublishRetry(ctx, body, retryDelay(attempt))
}

func retryDelay(attempt int) time.Duration {
	delays := config.AppConfig.CleanupRetryDelays
	if len(delays) == 0 {
		return 30 * time.Second
	}
	if attempt <= 0 {
		return delays[0]
	}
	if attempt > len(delays) {
		return delays[len(delays)-1]
	}
	return delays[attempt-1]
}
