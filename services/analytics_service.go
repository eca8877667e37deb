package services

import (
	"context"
	"strings"

	"brewpair/entity"
	"brewpair/repository"
	"brewpair/utils"

	"github.com/shopspring/decimal"
)

const (
	dashboardRecent   = 50
	diagnosticsRecent = 10
)

type Dashboard struct {
	ShopID            string                     `json:"shopId,omitempty"`
	Counts            map[entity.EventKind]int64 `json:"counts"`
	PairingAcceptRate float64                    `json:"pairingAcceptRate"`
	ConversionRate    float64                    `json:"conversionRate"`
	UniqueSessions    int64                      `json:"uniqueSessions"`
	Recent            []entity.AnalyticsEvent    `json:"recentEvents"`
}

type Diagnostics struct {
	Database   string                  `json:"database"`
	EventCount int64                   `json:"eventCount"`
	Recent     []entity.AnalyticsEvent `json:"recentEvents"`
}

// TrackInput is a browser-reported event. The shop is named by id or slug.
type TrackInput struct {
	ShopID        string         `json:"shopId"`
	ShopSlug      string         `json:"shopSlug"`
	EventType     string         `json:"eventType" binding:"required"`
	CoffeeID      string         `json:"coffeeId"`
	PastryID      string         `json:"pastryId"`
	PairingRuleID string         `json:"pairingRuleId"`
	Metadata      map[string]any `json:"metadata"`
}

type AnalyticsService struct {
	stats   *repository.AnalyticsRepository
	events  *repository.EventRepository
	shops   *repository.ShopRepository
	tracker *Tracker
}

func NewAnalyticsService(stats *repository.AnalyticsRepository, events *repository.EventRepository, shops *repository.ShopRepository, tracker *Tracker) *AnalyticsService {
	return &AnalyticsService{stats: stats, events: events, shops: shops, tracker: tracker}
}

// Dashboard summarises the funnel; an empty shopID covers every shop.
func (s *AnalyticsService) Dashboard(ctx context.Context, shopID string) (*Dashboard, error) {
	counts, err := s.stats.CountByKind(ctx, shopID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.stats.UniqueSessions(ctx, shopID)
	if err != nil {
		return nil, err
	}
	recent, err := s.events.Recent(ctx, shopID, dashboardRecent)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		ShopID:            shopID,
		Counts:            counts,
		PairingAcceptRate: Rate(counts[entity.EventPairingAccept], counts[entity.EventPairingView]),
		ConversionRate:    Rate(counts[entity.EventCheckout], counts[entity.EventScan]),
		UniqueSessions:    sessions,
		Recent:            recent,
	}, nil
}

// Rate is part/whole as a percentage rounded to one decimal, 0 when whole is 0.
func Rate(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(whole), 4).
		Round(1).
		InexactFloat64()
}

// Session replays one visitor session for the dashboard, oldest event first.
func (s *AnalyticsService) Session(ctx context.Context, sessionID string) ([]entity.AnalyticsEvent, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, invalid("session id is required")
	}
	return s.events.FindBySession(ctx, sessionID)
}

// Diagnostics never fails: a broken database is reported in the payload.
func (s *AnalyticsService) Diagnostics(ctx context.Context) *Diagnostics {
	d := &Diagnostics{Database: "ok", Recent: []entity.AnalyticsEvent{}}
	if err := s.stats.Ping(ctx); err != nil {
		d.Database = err.Error()
		return d
	}
	if n, err := s.events.Count(ctx); err == nil {
		d.EventCount = n
	} else {
		d.Database = err.Error()
	}
	if recent, err := s.events.Recent(ctx, "", diagnosticsRecent); err == nil {
		d.Recent = recent
	}
	return d
}

// Track queues a browser-reported event after checking kind and shop.
func (s *AnalyticsService) Track(ctx context.Context, v utils.Visitor, in TrackInput) error {
	kind, err := entity.ParseEventKind(in.EventType)
	if err != nil {
		return invalid("%v", err)
	}
	// Scans are deduplicated against the landing redirect, see ScanService.TrackBackup.
	if kind == entity.EventScan {
		return invalid("scan events go through /api/track-scan")
	}

	var shop *entity.Shop
	switch {
	case in.ShopID != "":
		shop, err = s.shops.FindByID(ctx, in.ShopID)
	case in.ShopSlug != "":
		shop, err = s.shops.FindBySlug(ctx, in.ShopSlug)
	default:
		return invalid("shopId or shopSlug is required")
	}
	if err != nil {
		return storeErr(err, "shop")
	}

	md := map[string]any{"source": "client"}
	for k, val := range in.Metadata {
		md[k] = val
	}
	s.tracker.Record(v, shop.ID, kind, EventRefs{
		CoffeeID:      in.CoffeeID,
		PastryID:      in.PastryID,
		PairingRuleID: in.PairingRuleID,
		Metadata:      md,
	})
	return nil
}
