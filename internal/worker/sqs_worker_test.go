package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type stubHandler struct {
	results map[queue.MessageType]error
	handled []queue.Message
}

func (h *stubHandler) Name() string { return "stub" }

func (h *stubHandler) Handle(ctx context.Context, msg queue.Message) error {
	h.handled = append(h.handled, msg)
	return h.results[msg.Type]
}

func receipt(s string) *string { return &s }

func TestProcessMessages_DeletesOnlySettledMessages(t *testing.T) {
	mockQueue := new(mocks.MessageQueue)
	handler := &stubHandler{results: map[queue.MessageType]error{
		queue.MessageTypeIndexListing:  nil,
		queue.MessageTypeDeleteListing: errors.New("opensearch unavailable"),
		queue.MessageTypeScrape:        unprocessable("bad job"),
	}}
	w := NewSQSWorker(mockQueue, "queue-url", handler, logger.NewNop(), 1, time.Second)

	ctx := context.Background()
	mockQueue.On("ReceiveMessages", ctx, "queue-url", int32(10), int32(20)).Return([]queue.ReceivedMessage{
		{Message: queue.Message{Type: queue.MessageTypeIndexListing, TenantID: "acme"}, ReceiptHandle: receipt("ok")},
		{Message: queue.Message{Type: queue.MessageTypeDeleteListing, TenantID: "acme"}, ReceiptHandle: receipt("retry")},
		{Message: queue.Message{Type: queue.MessageTypeScrape, TenantID: "acme"}, ReceiptHandle: receipt("dropped")},
		{Message: queue.Message{}, ReceiptHandle: receipt("garbage")},
	}, nil)
	mockQueue.On("DeleteMessage", ctx, "queue-url", mock.Anything).Return(nil)

	err := w.processMessages(ctx)

	assert.NoError(t, err)
	assert.Len(t, handler.handled, 3)
	mockQueue.AssertNumberOfCalls(t, "DeleteMessage", 3)
	mockQueue.AssertNotCalled(t, "DeleteMessage", ctx, "queue-url", mock.MatchedBy(func(h *string) bool {
		return *h == "retry"
	}))
}

func TestProcessMessages_ReceiveError(t *testing.T) {
	mockQueue := new(mocks.MessageQueue)
	w := NewSQSWorker(mockQueue, "queue-url", &stubHandler{}, logger.NewNop(), 1, time.Second)
	mockQueue.On("ReceiveMessages", mock.Anything, "queue-url", int32(10), int32(20)).Return(nil, errors.New("throttled"))

	err := w.processMessages(context.Background())

	assert.Error(t, err)
	mockQueue.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartStop(t *testing.T) {
	mockQueue := new(mocks.MessageQueue)
	mockQueue.On("ReceiveMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, context.Canceled).Maybe()
	w := NewSQSWorker(mockQueue, "queue-url", &stubHandler{}, logger.NewNop(), 2, time.Millisecond)

	w.Start()
	w.Stop()

	assert.Error(t, w.ctx.Err())
}
