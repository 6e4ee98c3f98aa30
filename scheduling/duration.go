package scheduling

import (
	"fmt"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// LineItemRequest is one requested service within a booking. DurationMin of
// zero means "use the catalog default"; PrepGapMin is the preparation time
// preceding this service.
type LineItemRequest struct {
	ServiceID   uint `json:"service_id"`
	DurationMin int  `json:"duration_min"`
	PrepGapMin  int  `json:"prep_gap_min"`
}

// ResolveItems turns a booking request's service selection into concrete line
// items with catalog defaults applied and contiguous 1..N sequences.
//
// A request may carry either a bare legacy service id or an ordered item
// list. Carrying both, or neither, is an invalid selection.
func ResolveItems(legacyServiceID uint, items []LineItemRequest, catalog map[uint]models.Service) ([]models.ServiceLineItem, error) {
	if legacyServiceID != 0 && len(items) > 0 {
		return nil, fmt.Errorf("%w: request has both a service id and a line item list", ErrInvalidServiceSelection)
	}
	if legacyServiceID != 0 {
		items = []LineItemRequest{{ServiceID: legacyServiceID}}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no services selected", ErrInvalidServiceSelection)
	}

	resolved := make([]models.ServiceLineItem, 0, len(items))
	for i, item := range items {
		svc, ok := catalog[item.ServiceID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown service %d", ErrInvalidServiceSelection, item.ServiceID)
		}
		duration := item.DurationMin
		if duration == 0 {
			duration = svc.DurationMin
		}
		if duration <= 0 || item.PrepGapMin < 0 {
			return nil, fmt.Errorf("%w: service %d has a non-positive duration", ErrInvalidServiceSelection, item.ServiceID)
		}
		resolved = append(resolved, models.ServiceLineItem{
			ServiceID:   item.ServiceID,
			Sequence:    i + 1,
			DurationMin: duration,
			PrepGapMin:  item.PrepGapMin,
		})
	}
	return resolved, nil
}

// TotalSpan computes the appointment span as the sum of each line item's
// effective duration plus its preparation gap.
func TotalSpan(items []models.ServiceLineItem) (time.Duration, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: no services selected", ErrInvalidServiceSelection)
	}
	total := 0
	for _, item := range items {
		total += item.DurationMin + item.PrepGapMin
	}
	return time.Duration(total) * time.Minute, nil
}
