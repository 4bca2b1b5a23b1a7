package scheduling

import (
	"fmt"

	bookingRepo "locart/database/repository/booking"
	catalogRepo "locart/database/repository/catalog"
)

// Conflict describes an existing booking that overlaps a proposed interval.
// ServiceName is the name behind the conflicting booking's first line item,
// used to tell the caller what the stylist is already doing in that window.
type Conflict struct {
	BookingID   string
	ServiceName string
	StartTime   string
	EndTime     string
}

// Message renders the customer-facing description of the collision.
func (c *Conflict) Message() string {
	name := c.ServiceName
	if name == "" {
		name = "another appointment"
	}
	return fmt.Sprintf("stylist already has %s booked from %s to %s", name, c.StartTime, c.EndTime)
}

// ConflictValidator checks a proposed appointment interval against the
// stylist's existing non-cancelled bookings.
type ConflictValidator struct {
	bookings bookingRepo.BookingRepository
	catalog  catalogRepo.CatalogRepository
}

func NewConflictValidator(bookings bookingRepo.BookingRepository, catalog catalogRepo.CatalogRepository) *ConflictValidator {
	return &ConflictValidator{bookings: bookings, catalog: catalog}
}

// Check returns the first conflicting booking for the proposed interval, or
// nil if the window is free. Two intervals conflict when they genuinely
// overlap: back-to-back appointments sharing a boundary do not. Pass the
// booking's own id in excludeBookingID when re-validating an edit so it does
// not collide with itself.
func (v *ConflictValidator) Check(stylistID, date, startTime string, durationMinutes int, excludeBookingID string) (*Conflict, error) {
	endTime, err := AddMinutes(startTime, durationMinutes)
	if err != nil {
		return nil, err
	}

	existing, err := v.bookings.FindConflict(bookingRepo.ConflictQuery{
		StylistID:        stylistID,
		ServiceDate:      date,
		StartTime:        startTime,
		EndTime:          endTime,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("conflict lookup failed: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	conflict := &Conflict{
		BookingID: existing.ID,
		StartTime: existing.ServiceStartTime,
		EndTime:   existing.ServiceEndTime,
	}

	// Best effort: name the service occupying the window. A lookup failure
	// still reports the conflict, just without the service name.
	items, err := v.bookings.GetLineItems(existing.ID)
	if err == nil && len(items) > 0 {
		if svc, err := v.catalog.GetServiceByID(items[0].ServiceID); err == nil && svc != nil {
			conflict.ServiceName = svc.ServiceName
		}
	}
	return conflict, nil
}
