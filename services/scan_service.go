package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brewpair/entity"
	"brewpair/repository"
	"brewpair/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanResult is what a QR landing needs to redirect the visitor.
type ScanResult struct {
	Shop          *entity.Shop
	ScanSessionID string
	Event         *entity.AnalyticsEvent
	Deduplicated  bool
}

type ScanService struct {
	shops   *repository.ShopRepository
	events  *repository.EventRepository
	tracker *Tracker
}

func NewScanService(shops *repository.ShopRepository, events *repository.EventRepository, tracker *Tracker) *ScanService {
	return &ScanService{shops: shops, events: events, tracker: tracker}
}

// NewScanSessionID returns ids of the form qr_scan_<unix-ms>_<8 hex>.
func NewScanSessionID(now time.Time) string {
	return fmt.Sprintf("qr_scan_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Resolve looks the token up and records exactly one scan event. A failed
// write is logged; the visitor still gets to the menu.
func (s *ScanService) Resolve(ctx context.Context, v utils.Visitor, token string) (*ScanResult, error) {
	shop, err := s.findShop(ctx, token)
	if err != nil {
		return nil, err
	}

	res := &ScanResult{Shop: shop, ScanSessionID: NewScanSessionID(time.Now())}
	ev, err := s.tracker.RecordNow(ctx, scanVisitor(v, res.ScanSessionID), shop.ID, entity.EventScan, EventRefs{
		Metadata: scanMetadata(shop.QRCode, v, "qr_scan"),
	})
	if err != nil {
		log.Errorf("record scan for shop %s: %v", shop.Slug, err)
		return res, nil
	}
	res.Event = ev
	return res, nil
}

// TrackBackup is the browser-side fallback. When the request carries the
// marker of a scan already stored for this shop, that scan is returned
// instead of a new one.
func (s *ScanService) TrackBackup(ctx context.Context, v utils.Visitor, token, marker string) (*ScanResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, invalid("qrCode is required")
	}
	shop, err := s.findShop(ctx, token)
	if err != nil {
		return nil, err
	}

	if marker != "" {
		prev, err := s.events.FindScan(ctx, shop.ID, marker)
		switch {
		case err == nil:
			return &ScanResult{Shop: shop, ScanSessionID: marker, Event: prev, Deduplicated: true}, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	res := &ScanResult{Shop: shop, ScanSessionID: NewScanSessionID(time.Now())}
	ev, err := s.tracker.RecordNow(ctx, scanVisitor(v, res.ScanSessionID), shop.ID, entity.EventScan, EventRefs{
		Metadata: scanMetadata(shop.QRCode, v, "backup_tracker"),
	})
	if err != nil {
		return nil, err
	}
	res.Event = ev
	return res, nil
}

func (s *ScanService) findShop(ctx context.Context, token string) (*entity.Shop, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: qr code", ErrNotFound)
	}
	shop, err := s.shops.FindByQRCode(ctx, token)
	if err != nil {
		return nil, storeErr(err, "qr code")
	}
	return shop, nil
}

// scan events live under the scan session; the browser session is kept in metadata.
func scanVisitor(v utils.Visitor, scanSession string) utils.Visitor {
	return utils.Visitor{SessionID: scanSession, UserID: v.UserID, Role: v.Role}
}

func scanMetadata(code string, v utils.Visitor, source string) map[string]any {
	md := map[string]any{
		"qr_code":   code,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"source":    source,
	}
	if v.SessionID != "" {
		md["visitor_session"] = v.SessionID
	}
	return md
}
