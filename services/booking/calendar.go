package booking

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ExportCalendar renders one booking as a downloadable single-event ICS
// artifact. Pure read-side transform; nothing is written.
func (s *DefaultBookingService) ExportCalendar(id string) (string, []byte, error) {
	b, err := s.loadBooking(id)
	if err != nil {
		return "", nil, err
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", b.ServiceDate+" "+b.ServiceStartTime, time.Local)
	if err != nil {
		return "", nil, fmt.Errorf("booking %s has unparseable schedule: %w", id, err)
	}

	items, err := s.bookings.GetLineItems(id)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load line items for booking %s: %w", id, err)
	}
	duration := 0
	for _, it := range items {
		duration += it.Duration
	}
	if duration == 0 {
		duration = 60
	}

	customer := "Customer"
	if c := s.clientSummary(b.UserID); c != nil && c.Name != "" {
		customer = c.Name
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(b.ID)
	event.SetCreatedTime(b.CreatedAt)
	event.SetDtStampTime(time.Now())
	event.SetStartAt(start)
	event.SetEndAt(start.Add(time.Duration(duration) * time.Minute))
	event.SetSummary(fmt.Sprintf("Salon Appointment - %s", customer))
	event.SetStatus(ics.ObjectStatusConfirmed)
	if b.SalonID != "" {
		event.SetLocation(b.SalonID)
	}

	filename := fmt.Sprintf("booking-%s.ics", b.BookingNumber)
	return filename, []byte(cal.Serialize()), nil
}
