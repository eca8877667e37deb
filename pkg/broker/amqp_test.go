package broker

import (
	"encoding/json"
	"testing"
	"time"

	"brewpair/entity"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEncode(t *testing.T) {
	coffee := "coffee-1"
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	ev := &entity.AnalyticsEvent{
		ID:        "ev-1",
		ShopID:    "shop-1",
		SessionID: "s-1",
		EventType: entity.EventPairingView,
		CoffeeID:  &coffee,
		Metadata:  datatypes.JSONMap{"rank": 1},
		CreatedAt: at,
	}

	msg, err := Encode(ev)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "ev-1", msg.MessageId)
	assert.Equal(t, "pairing_view", msg.Type)
	assert.Equal(t, at, msg.Timestamp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "shop-1", body["shopId"])
	assert.Equal(t, "coffee-1", body["coffeeId"])
	assert.Nil(t, body["pastryId"])
}
