package services

import (
	"context"
	"sync"
	"time"

	"brewpair/entity"
	"brewpair/repository"
	"brewpair/utils"

	"github.com/op/go-logging"
	"gorm.io/datatypes"
)

var log = logging.MustGetLogger("services")

// EventRefs are the optional references an event can carry.
type EventRefs struct {
	CoffeeID      string
	PastryID      string
	PairingRuleID string
	Metadata      map[string]any
}

// EventSink receives every event after it has been stored.
type EventSink interface {
	Publish(ev *entity.AnalyticsEvent)
}

// Tracker writes analytics events off the request path. Delivery is
// at-most-once: a full queue drops the event and nothing is retried.
type Tracker struct {
	events *repository.EventRepository
	queue  chan *entity.AnalyticsEvent
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	sinks  []EventSink
}

func NewTracker(events *repository.EventRepository, buffer, workers int) *Tracker {
	if buffer < 1 {
		buffer = 1
	}
	if workers < 1 {
		workers = 1
	}
	t := &Tracker{
		events: events,
		queue:  make(chan *entity.AnalyticsEvent, buffer),
	}
	for i := 0; i < workers; i++ {
		t.wg.Add(1)
		go t.work()
	}
	return t
}

func (t *Tracker) AddSink(s EventSink) {
	t.mu.Lock()
	t.sinks = append(t.sinks, s)
	t.mu.Unlock()
}

// Record queues an event and returns immediately.
func (t *Tracker) Record(v utils.Visitor, shopID string, kind entity.EventKind, refs EventRefs) {
	ev, ok := buildEvent(v, shopID, kind, refs)
	if !ok {
		return
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		log.Warningf("tracker closed, dropping %s event", kind)
		return
	}
	select {
	case t.queue <- ev:
	default:
		log.Warningf("tracker queue full, dropping %s event for session %s", kind, v.SessionID)
	}
}

// RecordNow stores the event before returning it.
func (t *Tracker) RecordNow(ctx context.Context, v utils.Visitor, shopID string, kind entity.EventKind, refs EventRefs) (*entity.AnalyticsEvent, error) {
	ev, ok := buildEvent(v, shopID, kind, refs)
	if !ok {
		return nil, invalid("event needs a shop, a session and a known kind")
	}
	if err := t.events.Create(ctx, ev); err != nil {
		return nil, err
	}
	t.fanOut(ev)
	return ev, nil
}

// Close stops intake and waits for queued events to be written.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.queue)
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Tracker) work() {
	defer t.wg.Done()
	for ev := range t.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := t.events.Create(ctx, ev)
		cancel()
		if err != nil {
			log.Errorf("record %s event: %v", ev.EventType, err)
			continue
		}
		t.fanOut(ev)
	}
}

func (t *Tracker) fanOut(ev *entity.AnalyticsEvent) {
	t.mu.RLock()
	sinks := t.sinks
	t.mu.RUnlock()
	for _, s := range sinks {
		s.Publish(ev)
	}
}

func buildEvent(v utils.Visitor, shopID string, kind entity.EventKind, refs EventRefs) (*entity.AnalyticsEvent, bool) {
	if shopID == "" || v.SessionID == "" || !kind.Valid() {
		log.Warningf("discarding malformed event kind=%q shop=%q session=%q", kind, shopID, v.SessionID)
		return nil, false
	}
	ev := &entity.AnalyticsEvent{
		ShopID:        shopID,
		SessionID:     v.SessionID,
		UserID:        optional(v.UserID),
		EventType:     kind,
		CoffeeID:      optional(refs.CoffeeID),
		PastryID:      optional(refs.PastryID),
		PairingRuleID: optional(refs.PairingRuleID),
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     time.Now(),
	}
	for k, val := range refs.Metadata {
		ev.Metadata[k] = val
	}
	return ev, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
