package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "locart/database/repository/booking"
	"locart/models"
)

func testStylist() *models.Stylist {
	return &models.Stylist{
		ID:           "stylist-1",
		SalonID:      "salon-1",
		WorkingDays:  models.DefaultWorkingDays(),
		WorkingHours: models.DefaultWorkingHours(),
	}
}

func engineWithBookings(bookings []models.Booking) *AvailabilityEngine {
	repo := &fakeBookingRepo{
		listByStylistAndDate: func(stylistID, date string, statuses []string) ([]models.Booking, error) {
			return bookings, nil
		},
	}
	return NewAvailabilityEngine(repo, &fakeCatalog{})
}

// 2024-06-03 is a Monday.
const monday = "2024-06-03"

func TestDaySlotsFullOpenDay(t *testing.T) {
	engine := engineWithBookings(nil)

	slots, err := engine.DaySlots(testStylist(), monday, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots.AM)
	assert.Equal(t, []string{"12:00", "13:00", "14:00", "15:00", "16:00"}, slots.PM)
}

func TestDaySlotsExcludesOverlappingWindows(t *testing.T) {
	// An existing 10:00-11:30 booking must knock out every generated slot
	// whose window overlaps it, not just the matching start time.
	engine := engineWithBookings([]models.Booking{{
		ID:               "b-1",
		ServiceStartTime: "10:00",
		ServiceEndTime:   "11:30",
	}})

	slots, err := engine.DaySlots(testStylist(), monday, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00"}, slots.AM)
	assert.Equal(t, []string{"12:00", "13:00", "14:00", "15:00", "16:00"}, slots.PM)
}

func TestDaySlotsBackToBackDoesNotBlock(t *testing.T) {
	// A booking ending exactly at 10:00 leaves the 10:00 slot open.
	engine := engineWithBookings([]models.Booking{{
		ID:               "b-1",
		ServiceStartTime: "09:00",
		ServiceEndTime:   "10:00",
	}})

	slots, err := engine.DaySlots(testStylist(), monday, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, slots.AM)
}

func TestDaySlotsNonWorkingDay(t *testing.T) {
	engine := engineWithBookings(nil)

	// 2024-06-02 is a Sunday.
	slots, err := engine.DaySlots(testStylist(), "2024-06-02", 60)
	require.NoError(t, err)
	assert.Empty(t, slots.AM)
	assert.Empty(t, slots.PM)
}

func TestDaySlotsHoliday(t *testing.T) {
	repo := &fakeBookingRepo{
		listByStylistAndDate: func(string, string, []string) ([]models.Booking, error) {
			return nil, nil
		},
	}
	catalog := &fakeCatalog{
		isHoliday: func(salonID, date string) (bool, error) {
			return salonID == "salon-1" && date == monday, nil
		},
	}
	engine := NewAvailabilityEngine(repo, catalog)

	slots, err := engine.DaySlots(testStylist(), monday, 60)
	require.NoError(t, err)
	assert.Empty(t, slots.AM)
	assert.Empty(t, slots.PM)
}

func TestDaySlotsStopsBeforeClosing(t *testing.T) {
	// 90-minute steps from 09:00: the 16:30 candidate would run past 17:00.
	engine := engineWithBookings(nil)

	slots, err := engine.DaySlots(testStylist(), monday, 90)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:30"}, slots.AM)
	assert.Equal(t, []string{"12:00", "13:30", "15:00"}, slots.PM)
}

func TestDaySlotsRejectsNonPositiveDuration(t *testing.T) {
	engine := engineWithBookings(nil)

	_, err := engine.DaySlots(testStylist(), monday, 0)
	assert.Error(t, err)
}

func TestWeekSlotsCoversSevenDays(t *testing.T) {
	engine := engineWithBookings(nil)

	week, err := engine.WeekSlots(testStylist(), monday, 60)
	require.NoError(t, err)
	require.Len(t, week, 7)

	// Monday through Friday are working days; the weekend is empty.
	assert.NotEmpty(t, week["2024-06-03"].AM)
	assert.NotEmpty(t, week["2024-06-07"].PM)
	assert.Empty(t, week["2024-06-08"].AM) // Saturday
	assert.Empty(t, week["2024-06-09"].AM) // Sunday
}

func TestWeekSlotsPropagatesErrors(t *testing.T) {
	repo := &fakeBookingRepo{
		listByStylistAndDate: func(string, string, []string) ([]models.Booking, error) {
			return nil, assert.AnError
		},
	}
	engine := NewAvailabilityEngine(repo, &fakeCatalog{})

	_, err := engine.WeekSlots(testStylist(), monday, 60)
	assert.Error(t, err)
}

func TestConflictCheckNamesServiceAndWindow(t *testing.T) {
	repo := &fakeBookingRepo{
		findConflict: func(q bookingRepo.ConflictQuery) (*models.Booking, error) {
			assert.Equal(t, "stylist-1", q.StylistID)
			assert.Equal(t, "10:30", q.StartTime)
			assert.Equal(t, "11:30", q.EndTime)
			return &models.Booking{
				ID:               "b-1",
				ServiceStartTime: "10:00",
				ServiceEndTime:   "11:00",
			}, nil
		},
		getLineItems: func(bookingID string) ([]models.BookedService, error) {
			return []models.BookedService{{ServiceID: "svc-1"}}, nil
		},
	}
	catalog := &fakeCatalog{
		getServiceByID: func(id string) (*models.Service, error) {
			return &models.Service{ID: id, ServiceName: "Haircut"}, nil
		},
	}
	validator := NewConflictValidator(repo, catalog)

	conflict, err := validator.Check("stylist-1", monday, "10:30", 60, "")
	require.NoError(t, err)
	require.NotNil(t, conflict)

	assert.Equal(t, "b-1", conflict.BookingID)
	assert.Contains(t, conflict.Message(), "Haircut")
	assert.Contains(t, conflict.Message(), "10:00 to 11:00")
}

func TestConflictCheckFreeWindow(t *testing.T) {
	repo := &fakeBookingRepo{
		findConflict: func(q bookingRepo.ConflictQuery) (*models.Booking, error) {
			return nil, nil
		},
	}
	validator := NewConflictValidator(repo, &fakeCatalog{})

	conflict, err := validator.Check("stylist-1", monday, "09:00", 60, "")
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestConflictCheckPassesExclusion(t *testing.T) {
	repo := &fakeBookingRepo{
		findConflict: func(q bookingRepo.ConflictQuery) (*models.Booking, error) {
			assert.Equal(t, "b-edit", q.ExcludeBookingID)
			return nil, nil
		},
	}
	validator := NewConflictValidator(repo, &fakeCatalog{})

	_, err := validator.Check("stylist-1", monday, "09:00", 60, "b-edit")
	require.NoError(t, err)
}
