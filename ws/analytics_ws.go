package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"brewpair/entity"
	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("ws")

const (
	allShops      = ""
	writeTimeout  = 5 * time.Second
	backlog       = 256
	clientBacklog = 32
)

// AnalyticsHub pushes stored analytics events to admin dashboards.
type AnalyticsHub struct {
	clients    map[string]map[*Subscription]bool // shopID -> set of clients, "" follows every shop
	broadcast  chan *entity.AnalyticsEvent
	register   chan *Subscription
	unregister chan *Subscription
	done       chan struct{}
	mu         sync.Mutex
	shops      *services.ShopService
}

// Subscription is one admin connection following one shop (or all).
// Events reach the socket through send, written by its own goroutine.
type Subscription struct {
	Conn   *websocket.Conn
	ShopID string
	UserID string
	send   chan *entity.AnalyticsEvent
}

func NewAnalyticsHub(shops *services.ShopService) *AnalyticsHub {
	return &AnalyticsHub{
		clients:    make(map[string]map[*Subscription]bool),
		broadcast:  make(chan *entity.AnalyticsEvent, backlog),
		register:   make(chan *Subscription),
		unregister: make(chan *Subscription),
		done:       make(chan struct{}),
		shops:      shops,
	}
}

// Publish never blocks the tracker; a slow hub loses events.
func (h *AnalyticsHub) Publish(ev *entity.AnalyticsEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Warningf("live feed backlog full, skipping event %s", ev.ID)
	}
}

// Run serves register/unregister/broadcast until ctx ends.
func (h *AnalyticsHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.ShopID] == nil {
				h.clients[sub.ShopID] = make(map[*Subscription]bool)
			}
			h.clients[sub.ShopID][sub] = true
			h.mu.Unlock()
			log.Debugf("admin %s following shop %q", sub.UserID, sub.ShopID)

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			h.fanout(ev.ShopID, ev)
			h.fanout(allShops, ev)
			h.mu.Unlock()
		}
	}
}

// fanout must be called with mu held. A client whose buffer is full is dropped
// instead of stalling the others.
func (h *AnalyticsHub) fanout(shopID string, ev *entity.AnalyticsEvent) {
	for sub := range h.clients[shopID] {
		select {
		case sub.send <- ev:
		default:
			log.Warningf("admin %s is not keeping up, closing live feed", sub.UserID)
			h.drop(sub)
		}
	}
}

// drop must be called with mu held.
func (h *AnalyticsHub) drop(sub *Subscription) {
	if _, ok := h.clients[sub.ShopID][sub]; !ok {
		return
	}
	delete(h.clients[sub.ShopID], sub)
	close(sub.send)
}

func (h *AnalyticsHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for shopID, set := range h.clients {
		for sub := range set {
			close(sub.send)
		}
		delete(h.clients, shopID)
	}
}

// Subscribers reports how many connections follow shopID.
func (h *AnalyticsHub) Subscribers(shopID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[shopID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket serves GET /admin/analytics/live?shopId=
func (h *AnalyticsHub) HandleWebSocket(c *gin.Context) {
	shopID := c.Query("shopId")
	if shopID != allShops {
		if _, err := h.shops.Get(c.Request.Context(), shopID); err != nil {
			resp.Error(c, err)
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warningf("ws upgrade error: %v", err)
		return
	}

	sub := &Subscription{
		Conn:   conn,
		ShopID: shopID,
		UserID: utils.CurrentUserID(c),
		send:   make(chan *entity.AnalyticsEvent, clientBacklog),
	}
	select {
	case h.register <- sub:
		go h.write(sub)
		go h.listen(sub)
	case <-h.done:
		conn.Close()
	}
}

// write owns the socket's write side and closes it once send is closed.
func (h *AnalyticsHub) write(sub *Subscription) {
	defer sub.Conn.Close()
	for ev := range sub.send {
		_ = sub.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := sub.Conn.WriteJSON(ev); err != nil {
			log.Warningf("ws write error for admin %s: %v", sub.UserID, err)
			return
		}
	}
}

// listen only drains the connection; dashboards do not send anything.
func (h *AnalyticsHub) listen(sub *Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
