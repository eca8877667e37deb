package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brewpair/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*AnalyticsHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewAnalyticsHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/live", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
}

func TestHubDeliversEvents(t *testing.T) {
	hub, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.Subscribers(allShops) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(&entity.AnalyticsEvent{ID: "ev-1", ShopID: "shop-1", EventType: entity.EventCheckout})

	var got entity.AnalyticsEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "ev-1", got.ID)
	assert.Equal(t, entity.EventCheckout, got.EventType)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers(allShops) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewAnalyticsHub(nil)
	slow := &Subscription{ShopID: "shop-1", UserID: "admin-1", send: make(chan *entity.AnalyticsEvent, 1)}
	fast := &Subscription{ShopID: "shop-1", UserID: "admin-2", send: make(chan *entity.AnalyticsEvent, 4)}
	hub.clients["shop-1"] = map[*Subscription]bool{slow: true, fast: true}

	hub.mu.Lock()
	hub.fanout("shop-1", &entity.AnalyticsEvent{ID: "a"})
	hub.fanout("shop-1", &entity.AnalyticsEvent{ID: "b"})
	hub.mu.Unlock()

	assert.Equal(t, 1, hub.Subscribers("shop-1"))
	assert.Len(t, fast.send, 2)

	// the slow client's buffer is drained and then closed
	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}
