package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/metrics"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// ErrUnprocessable marks a message that will never succeed. Such messages are
// deleted instead of being left for redelivery.
var ErrUnprocessable = errors.New("unprocessable message")

//go:generate mockery --name MessageQueue --output ../mocks
type MessageQueue interface {
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

// MessageHandler processes the messages of one queue.
type MessageHandler interface {
	Name() string
	Handle(ctx context.Context, msg queue.Message) error
}

type SQSWorker struct {
	queue        MessageQueue
	queueURL     string
	handler      MessageHandler
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	ctx          context.Context
	cancel       context.CancelFunc
	waitGroup    sync.WaitGroup
}

func NewSQSWorker(
	queue MessageQueue,
	queueURL string,
	handler MessageHandler,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *SQSWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &SQSWorker{
		queue:        queue,
		queueURL:     queueURL,
		handler:      handler,
		logger:       logger.With(zap.String("worker", handler.Name())),
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10, // Process up to 10 messages at a time
		waitTime:     20, // Long polling: wait up to 20 seconds for messages
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *SQSWorker) Start() {
	w.logger.Info("Starting SQS workers...", zap.Int("count", w.workerCount))

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

// Stop cancels in-flight polls and waits for the current messages to finish.
func (w *SQSWorker) Stop() {
	w.logger.Info("Stopping SQS workers...")
	w.cancel()
	w.waitGroup.Wait()
	w.logger.Info("All SQS workers stopped")
}

func (w *SQSWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Infof("Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(w.ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error("Failed to process messages", err, zap.Int("worker_id", workerID))
			}
		}
	}
}

func (w *SQSWorker) processMessages(ctx context.Context) error {
	messages, err := w.queue.ReceiveMessages(ctx, w.queueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if !w.processMessage(context.WithoutCancel(ctx), msg.Message) {
			continue
		}

		// Only delete the message if processing was successful
		if err := w.queue.DeleteMessage(ctx, w.queueURL, msg.ReceiptHandle); err != nil {
			w.logger.Error("Failed to delete message", err)
		}
	}

	return nil
}

// processMessage reports whether the message should be deleted.
func (w *SQSWorker) processMessage(ctx context.Context, msg queue.Message) bool {
	if msg.Type == "" {
		w.logger.Warn("Dropping undecodable message")
		w.record("unknown", "dropped")
		return true
	}

	log := w.logger.With(zap.String("type", string(msg.Type)), zap.String("tenant_id", msg.TenantID))
	log.Debug("Processing message")

	err := w.handler.Handle(ctx, msg)
	switch {
	case err == nil:
		w.record(string(msg.Type), "success")
		return true
	case errors.Is(err, ErrUnprocessable):
		log.Warn("Dropping unprocessable message", zap.Error(err))
		w.record(string(msg.Type), "dropped")
		return true
	default:
		log.Error("Failed to process message", err)
		w.record(string(msg.Type), "error")
		return false
	}
}

func (w *SQSWorker) record(msgType, result string) {
	metrics.JobsProcessedTotal.WithLabelValues(w.handler.Name(), msgType, result).Inc()
}
