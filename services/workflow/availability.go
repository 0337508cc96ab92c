package workflow

import (
	"context"

	"vowflow/models"
)

// CheckAvailability reports whether the vendor is free for the requested
// slot. Two independent conditions make a slot unavailable: a vendor-declared
// blocked date, or an overlapping pending/confirmed booking. This is a
// read-then-decide check; the partial unique booking index is the
// authoritative backstop when two initiations race (see bookingRepo).
func (s *DefaultWorkflowService) CheckAvailability(ctx context.Context, vendorID, date string, start, end int, excludeBookingID string) (*models.AvailabilityResult, error) {
	if vendorID == "" {
		return nil, NewValidationError("vendor_id is required")
	}
	if err := validateSlot(date, start, end); err != nil {
		return nil, err
	}

	result := &models.AvailabilityResult{Available: true}

	blocks, err := s.Blocked.ListByVendorDate(ctx, vendorID, date)
	if err != nil {
		return nil, NewPersistenceError("failed to load blocked dates: %v", err)
	}
	for _, b := range blocks {
		if rangesOverlap(start, end, b.Start, b.End) {
			result.Conflicts = append(result.Conflicts, models.SlotConflict{
				Kind:  "blocked_date",
				RefID: b.BlockID,
				Date:  b.Date,
				Start: b.Start,
				End:   b.End,
			})
		}
	}

	bookings, err := s.Bookings.FindActive(ctx, vendorID, date, excludeBookingID)
	if err != nil {
		return nil, NewPersistenceError("failed to load bookings: %v", err)
	}
	for _, b := range bookings {
		if rangesOverlap(start, end, b.Start, b.End) {
			result.Conflicts = append(result.Conflicts, models.SlotConflict{
				Kind:  "booking",
				RefID: b.ID,
				Date:  b.ServiceDate,
				Start: b.Start,
				End:   b.End,
			})
		}
	}

	result.Available = len(result.Conflicts) == 0
	return result, nil
}

// BlockDate declares a vendor-unavailable date or time range.
func (s *DefaultWorkflowService) BlockDate(ctx context.Context, vendorID, date string, start, end int, reason string) (string, error) {
	if vendorID == "" {
		return "", NewValidationError("vendor_id is required")
	}
	if err := validateSlot(date, start, end); err != nil {
		return "", err
	}
	id, err := s.Blocked.Create(ctx, models.BlockedDate{
		VendorID: vendorID,
		Date:     date,
		Start:    start,
		End:      end,
		Reason:   reason,
	})
	if err != nil {
		return "", NewPersistenceError("failed to block date: %v", err)
	}
	return id, nil
}

func (s *DefaultWorkflowService) UnblockDate(ctx context.Context, vendorID, blockID string) error {
	if err := s.Blocked.Delete(ctx, vendorID, blockID); err != nil {
		return NewNotFoundError("blocked date %s not found for vendor %s", blockID, vendorID)
	}
	return nil
}

func (s *DefaultWorkflowService) ListBlockedDates(ctx context.Context, vendorID string) ([]models.BlockedDate, error) {
	blocks, err := s.Blocked.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, NewPersistenceError("failed to list blocked dates: %v", err)
	}
	return blocks, nil
}

// rangesOverlap applies the half-open overlap test on minutes-from-midnight
// ranges. A zero range (0,0) means full-day and conflicts with anything on
// the same date.
func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	if (aStart == 0 && aEnd == 0) || (bStart == 0 && bEnd == 0) {
		return true
	}
	return aStart < bEnd && bStart < aEnd
}
