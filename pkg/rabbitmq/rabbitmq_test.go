package rabbitmq_test

import (
	"testing"
	"time"

	"produk/pkg/rabbitmq"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg, err := rabbitmq.NewPublishing(map[string]interface{}{"type": "product.created", "id": 3}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"type": "product.created", "id": 3}`, string(msg.Body))
}

func TestNewPublishing_Unmarshalable(t *testing.T) {
	_, err := rabbitmq.NewPublishing(map[string]interface{}{"bad": make(chan int)}, time.Now())
	assert.Error(t, err)
}

func TestPublishEvent_WithoutChannel(t *testing.T) {
	var c rabbitmq.Client
	err := c.PublishEvent("product.created", struct{}{})
	assert.EqualError(t, err, "RabbitMQ channel is not available")
}
