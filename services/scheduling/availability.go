package scheduling

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	bookingRepo "locart/database/repository/booking"
	catalogRepo "locart/database/repository/catalog"
	"locart/models"
	"locart/utils"
)

// noonMinutes splits morning from afternoon slots.
const noonMinutes = 12 * 60

// AvailabilityEngine computes open time slots on a stylist's calendar from
// working days, working hours, salon holidays and existing bookings.
type AvailabilityEngine struct {
	bookings bookingRepo.BookingRepository
	catalog  catalogRepo.CatalogRepository
}

func NewAvailabilityEngine(bookings bookingRepo.BookingRepository, catalog catalogRepo.CatalogRepository) *AvailabilityEngine {
	return &AvailabilityEngine{bookings: bookings, catalog: catalog}
}

// DaySlots returns the bookable start times for one stylist on one date,
// split into AM and PM at noon. Slots are stepped at the service duration
// through the working window; a slot survives only if no active booking
// overlaps its [start, start+duration) interval. A non-working day or a
// salon holiday yields empty slot lists.
func (e *AvailabilityEngine) DaySlots(stylist *models.Stylist, date string, durationMinutes int) (models.DaySlots, error) {
	logger := utils.GetLogger()
	empty := models.DaySlots{AM: []string{}, PM: []string{}}

	if durationMinutes <= 0 {
		return empty, fmt.Errorf("service duration must be positive, got %d", durationMinutes)
	}

	weekday, err := WeekdayName(date)
	if err != nil {
		return empty, err
	}
	if !containsFold(stylist.WorkingDays, weekday) {
		return empty, nil
	}

	holiday, err := e.catalog.IsHoliday(stylist.SalonID, date)
	if err != nil {
		return empty, fmt.Errorf("failed to check holiday for %s: %w", date, err)
	}
	if holiday {
		logger.Debug("availability: salon holiday",
			zap.String("salonID", stylist.SalonID), zap.String("date", date))
		return empty, nil
	}

	dayStart, err := parseClock(stylist.WorkingHours.Start)
	if err != nil {
		return empty, fmt.Errorf("stylist %s has invalid working hours: %w", stylist.ID, err)
	}
	dayEnd, err := parseClock(stylist.WorkingHours.End)
	if err != nil {
		return empty, fmt.Errorf("stylist %s has invalid working hours: %w", stylist.ID, err)
	}

	booked, err := e.bookings.ListByStylistAndDate(stylist.ID, date, models.ActiveBookingStatuses())
	if err != nil {
		return empty, fmt.Errorf("failed to load bookings for stylist %s on %s: %w", stylist.ID, date, err)
	}

	slots := empty
	for start := dayStart; start+durationMinutes <= dayEnd; start += durationMinutes {
		end := start + durationMinutes
		if overlapsAny(booked, start, end) {
			continue
		}
		if start < noonMinutes {
			slots.AM = append(slots.AM, formatClock(start))
		} else {
			slots.PM = append(slots.PM, formatClock(start))
		}
	}
	return slots, nil
}

// WeekSlots computes DaySlots for the seven dates starting at from, keyed by
// "2006-01-02" date. The seven days are computed concurrently; the first
// error wins.
func (e *AvailabilityEngine) WeekSlots(stylist *models.Stylist, from string, durationMinutes int) (models.WeekAvailability, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", from, err)
	}

	week := make(models.WeekAvailability, 7)
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		wg.Add(1)
		go func(date string) {
			defer wg.Done()
			slots, err := e.DaySlots(stylist, date, durationMinutes)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			week[date] = slots
		}(date)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return week, nil
}

// overlapsAny reports whether [start,end) in minutes-from-midnight overlaps
// any of the given bookings. Bookings with unparseable times are treated as
// blocking their whole day rather than silently freeing the slot.
func overlapsAny(bookings []models.Booking, start, end int) bool {
	for _, b := range bookings {
		bStart, err1 := parseClock(b.ServiceStartTime)
		bEnd, err2 := parseClock(b.ServiceEndTime)
		if err1 != nil || err2 != nil {
			utils.GetLogger().Warn("availability: booking with malformed times",
				zap.String("bookingID", b.ID),
				zap.String("start", b.ServiceStartTime),
				zap.String("end", b.ServiceEndTime))
			return true
		}
		if start < bEnd && end > bStart {
			return true
		}
	}
	return false
}

func containsFold(days []string, day string) bool {
	for _, d := range days {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}
