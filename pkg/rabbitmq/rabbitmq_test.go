package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestOrderEvent_WireFormat(t *testing.T) {
	body, err := json.Marshal(OrderEvent{Type: EventOrderCreated, OrderID: "o1", UserID: "u1", Status: "pending", Amount: 42.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order.created","orderId":"o1","userId":"u1","status":"pending","amount":42.5}`, string(body))
}

func TestSettle_AcksHandledEvent(t *testing.T) {
	ack := &fakeAck{}
	var got OrderEvent
	settle(ack, 1, []byte(`{"type":"order.status_updated","orderId":"o1","status":"shipped"}`), func(e OrderEvent) error {
		got = e
		return nil
	})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Equal(t, EventOrderStatusUpdated, got.Type)
	assert.Equal(t, "shipped", got.Status)
}

func TestSettle_RequeuesOnHandlerError(t *testing.T) {
	ack := &fakeAck{}
	settle(ack, 2, []byte(`{"type":"order.created"}`), func(OrderEvent) error {
		return errors.New("downstream unavailable")
	})

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestSettle_DropsMalformedBody(t *testing.T) {
	ack := &fakeAck{}
	called := false
	settle(ack, 3, []byte(`not json`), func(OrderEvent) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestLogOrderEvent(t *testing.T) {
	assert.NoError(t, LogOrderEvent(OrderEvent{Type: EventOrderCreated, OrderID: "o1"}))
}
