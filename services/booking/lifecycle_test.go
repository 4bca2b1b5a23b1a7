package booking

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "locart/database/repository/booking"
	"locart/models"
)

func storedBooking() *models.Booking {
	return &models.Booking{
		ID:               "b-1",
		UserID:           "user-1",
		StylistID:        "stylist-1",
		ServiceDate:      "2024-06-03",
		ServiceStartTime: "10:00",
		ServiceEndTime:   "11:00",
		StylistDuration:  60,
		TotalDuration:    60,
		BookingMode:      models.BookingModeStore,
		BookingStatus:    models.BookingStatusUpcoming,
		PaymentStatus:    models.PaymentStatusPaid,
		PayableAmount:    50,
	}
}

func TestUpdateBookingStoreOnly(t *testing.T) {
	b := storedBooking()
	b.BookingMode = models.BookingModeOnline
	repo := &fakeBookingRepo{
		getBookingByID: func(id string) (*models.Booking, error) { return b, nil },
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	status := "ongoing"
	_, err := svc.UpdateBooking(context.Background(), "b-1", &models.UpdateBookingInput{BookingStatus: &status})

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, se.Status)
}

func TestUpdateBookingTerminalRejected(t *testing.T) {
	b := storedBooking()
	b.BookingStatus = models.BookingStatusCompleted
	repo := &fakeBookingRepo{
		getBookingByID: func(id string) (*models.Booking, error) { return b, nil },
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	note := "late"
	_, err := svc.UpdateBooking(context.Background(), "b-1", &models.UpdateBookingInput{BookingNote: &note})

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, se.Status)
}

func TestUpdateBookingTimeChangeRevalidates(t *testing.T) {
	b := storedBooking()
	var saved *models.Booking
	var conflictChecked bool
	repo := &fakeBookingRepo{
		getBookingByID: func(id string) (*models.Booking, error) { return b, nil },
		updateBooking:  func(updated *models.Booking) error { saved = updated; return nil },
	}
	repo.findConflict = func(q bookingRepo.ConflictQuery) (*models.Booking, error) {
		conflictChecked = true
		assert.Equal(t, "b-1", q.ExcludeBookingID)
		return nil, nil
	}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, notifier)

	slot := "14:00"
	updated, err := svc.UpdateBooking(context.Background(), "b-1", &models.UpdateBookingInput{TimeSlot: &slot})
	require.NoError(t, err)

	assert.True(t, conflictChecked)
	assert.Equal(t, "14:00", updated.ServiceStartTime)
	assert.Equal(t, "15:00", updated.ServiceEndTime)
	assert.Equal(t, saved, updated)
	assert.NotEmpty(t, notifier.notifications)
}

func TestUpdateBookingConflictOnNewSlot(t *testing.T) {
	b := storedBooking()
	repo := &fakeBookingRepo{
		getBookingByID: func(id string) (*models.Booking, error) { return b, nil },
	}
	repo.findConflict = func(q bookingRepo.ConflictQuery) (*models.Booking, error) {
		return &models.Booking{ID: "b-2", ServiceStartTime: "14:00", ServiceEndTime: "15:00"}, nil
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	slot := "14:30"
	_, err := svc.UpdateBooking(context.Background(), "b-1", &models.UpdateBookingInput{TimeSlot: &slot})

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, se.Status)
}

func TestBulkUpdateStatus(t *testing.T) {
	repo := &fakeBookingRepo{
		updateStatusBulk: func(ctx context.Context, ids []string, status, reason string) ([]string, []string, error) {
			assert.Equal(t, models.BookingStatusOngoing, status)
			return []string{"b-1", "b-2"}, []string{"b-3"}, nil
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	result, err := svc.BulkUpdateStatus(context.Background(), &models.BulkStatusInput{
		BookingIDs: []string{"b-1", "b-2", "b-3"},
		Status:     "Ongoing",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b-1", "b-2"}, result.UpdatedBookings)
	assert.Equal(t, []string{"b-3"}, result.SkippedBookings)
}

func TestBulkUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	_, err := svc.BulkUpdateStatus(context.Background(), &models.BulkStatusInput{
		BookingIDs: []string{"b-1"},
		Status:     "archived",
	})

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, se.Status)
}

func TestMarkCompletedCounts(t *testing.T) {
	repo := &fakeBookingRepo{
		findByIDs: func(ids []string) ([]models.Booking, error) {
			return []models.Booking{
				{ID: "b-1", BookingStatus: models.BookingStatusUpcoming},
				{ID: "b-2", BookingStatus: models.BookingStatusCancelled},
				{ID: "b-3", BookingStatus: models.BookingStatusCompleted},
			}, nil
		},
		markCompleted: func(ids []string) (int64, error) {
			assert.Equal(t, []string{"b-1"}, ids)
			return 1, nil
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	result, err := svc.MarkCompleted([]string{"b-1", "b-2", "b-3"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRequested)
	assert.Equal(t, 3, result.TotalFound)
	assert.Equal(t, 1, result.TotalUpdated)
	assert.Equal(t, 2, result.TotalSkipped)
}

func TestMarkCompletedCountsUnknownIDsAsSkipped(t *testing.T) {
	repo := &fakeBookingRepo{
		findByIDs: func(ids []string) ([]models.Booking, error) {
			return []models.Booking{
				{ID: "b-1", BookingStatus: models.BookingStatusUpcoming},
			}, nil
		},
		markCompleted: func(ids []string) (int64, error) { return 1, nil },
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	result, err := svc.MarkCompleted([]string{"b-1", "b-missing", "b-gone"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRequested)
	assert.Equal(t, 1, result.TotalFound)
	assert.Equal(t, 1, result.TotalUpdated)
	assert.Equal(t, 2, result.TotalSkipped)
}
