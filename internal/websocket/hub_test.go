package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, userID uuid.UUID) *Client {
	c := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 8)}
	h.register <- c
	return c
}

func TestHub_SendDeliversToLocalClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNop())
	go hub.Run(ctx)

	userID := uuid.New()
	client := newTestClient(hub, userID)
	other := newTestClient(hub, uuid.New())

	hub.Send(userID, &entity.Notification{Id: uuid.New(), UserId: userID, Title: "Founder invited"})

	select {
	case raw := <-client.Send:
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "notification", msg["type"])
		data := msg["data"].(map[string]interface{})
		assert.Equal(t, "Founder invited", data["title"])
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}

	assert.Len(t, other.Send, 0)
}

func TestHub_SendFansOutAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdbA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdbB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdbA.Close()
	defer rdbB.Close()

	hubA := NewHub(rdbA, logger.NewNop())
	hubB := NewHub(rdbB, logger.NewNop())
	go hubA.Run(ctx)
	go hubB.Run(ctx)

	userID := uuid.New()
	client := newTestClient(hubB, userID)
	n := &entity.Notification{Id: uuid.New(), UserId: userID, Title: "Document activated"}

	// the subscription on hubB is established asynchronously
	var got []byte
	assert.Eventually(t, func() bool {
		hubA.Send(userID, n)
		select {
		case got = <-client.Send:
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)

	require.NotNil(t, got)
	assert.Contains(t, string(got), "Document activated")
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNop())
	go hub.Run(ctx)

	client := newTestClient(hub, uuid.New())
	hub.unregister <- client

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-client.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
