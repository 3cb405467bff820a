package services

import (
	"time"

	"produk/internal/models"

	"github.com/google/uuid"
)

// Routing keys for product lifecycle events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishEvent(routingKey string, payload interface{}) error
}

// ProductEvent is the message body published after a change is committed.
type ProductEvent struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Product    models.Product `json:"product"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func newProductEvent(eventType string, product models.Product) ProductEvent {
	return ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}
