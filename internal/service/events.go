package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// publishEvent notifies backoffice clients of the tenant. Delivery is best effort.
func publishEvent(ctx context.Context, events EventPublisher, log *logger.Logger, tenantID string, eventType domain.EventType, subject string, payload any) {
	if events == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Warn("failed to encode event payload", zap.String("type", string(eventType)), zap.Error(err))
		return
	}
	event := &domain.Event{Type: eventType, TenantID: tenantID, Subject: subject, Payload: raw}
	if err := events.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
