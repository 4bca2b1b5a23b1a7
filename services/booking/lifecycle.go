package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"locart/models"
	"locart/services/scheduling"
	"locart/utils"
)

var validBookingStatuses = map[string]bool{
	models.BookingStatusUpcoming:   true,
	models.BookingStatusOngoing:    true,
	models.BookingStatusPending:    true,
	models.BookingStatusProcessing: true,
	models.BookingStatusConfirmed:  true,
	models.BookingStatusCompleted:  true,
	models.BookingStatusCancelled:  true,
}

// UpdateBooking edits a single store-mode booking. Online bookings cannot be
// edited through this path. A time-slot change re-validates the new window
// against the stylist's calendar, excluding the booking itself.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, id string, in *models.UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.loadBooking(id)
	if err != nil {
		return nil, err
	}
	if booking.BookingMode != models.BookingModeStore {
		return nil, forbiddenError("only store bookings can be edited")
	}
	if booking.IsTerminal() {
		return nil, conflictError("booking can no longer be edited",
			fmt.Sprintf("booking is %s", booking.BookingStatus))
	}

	if in.StylistDuration != nil {
		if *in.StylistDuration <= 0 {
			return nil, validationError("stylist_duration must be positive")
		}
		booking.StylistDuration = *in.StylistDuration
	}

	if in.TimeSlot != nil && *in.TimeSlot != booking.ServiceStartTime {
		conflict, err := s.conflicts.Check(booking.StylistID, booking.ServiceDate, *in.TimeSlot, booking.StylistDuration, booking.ID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, conflictError("time slot is not available", conflict.Message())
		}
		endTime, err := scheduling.AddMinutes(*in.TimeSlot, booking.StylistDuration)
		if err != nil {
			return nil, validationError(err.Error())
		}
		booking.ServiceStartTime = *in.TimeSlot
		booking.ServiceEndTime = endTime
	} else if in.StylistDuration != nil {
		endTime, err := scheduling.AddMinutes(booking.ServiceStartTime, booking.StylistDuration)
		if err != nil {
			return nil, validationError(err.Error())
		}
		booking.ServiceEndTime = endTime
	}

	if in.BookingStatus != nil {
		status := normalizeStatus(*in.BookingStatus, booking.BookingStatus)
		if !validBookingStatuses[status] {
			return nil, validationError(fmt.Sprintf("invalid booking status %q", status))
		}
		if status == models.BookingStatusCancelled && booking.BookingStatus != models.BookingStatusCancelled {
			now := time.Now()
			booking.CancelledAt = &now
		}
		booking.BookingStatus = status
	}
	if in.PaymentStatus != nil {
		booking.PaymentStatus = normalizeStatus(*in.PaymentStatus, booking.PaymentStatus)
	}
	if in.BookingNote != nil {
		booking.Notes = *in.BookingNote
	}

	if err := s.bookings.UpdateBooking(booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}

	s.notifier.Notify(booking.UserID, "Booking updated",
		fmt.Sprintf("Your appointment on %s at %s was updated.", booking.ServiceDate, booking.ServiceStartTime),
		"booking")

	utils.GetLogger().Info("booking updated", zap.String("bookingID", booking.ID))
	return booking, nil
}

// BulkUpdateStatus moves many store-mode bookings to one target status.
// Non-store bookings are skipped, not failed: the result enumerates both the
// applied and the skipped id sets.
func (s *DefaultBookingService) BulkUpdateStatus(ctx context.Context, in *models.BulkStatusInput) (*models.BulkStatusResult, error) {
	if len(in.BookingIDs) == 0 {
		return nil, validationError("booking_ids is required")
	}
	status := normalizeStatus(in.Status, "")
	if !validBookingStatuses[status] {
		return nil, validationError(fmt.Sprintf("invalid booking status %q", in.Status))
	}

	updated, skipped, err := s.bookings.UpdateStatusBulk(ctx, in.BookingIDs, status, in.Reason)
	if err != nil {
		return nil, fmt.Errorf("bulk status update failed: %w", err)
	}

	utils.GetLogger().Info("bulk status update",
		zap.String("status", status),
		zap.Int("updated", len(updated)),
		zap.Int("skipped", len(skipped)))

	return &models.BulkStatusResult{UpdatedBookings: updated, SkippedBookings: skipped}, nil
}

// MarkCompleted transitions the given bookings to completed, skipping any
// already cancelled or completed, and reports the counts.
func (s *DefaultBookingService) MarkCompleted(ids []string) (*models.MarkCompletedResult, error) {
	if len(ids) == 0 {
		return nil, validationError("booking_ids is required")
	}

	found, err := s.bookings.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	eligible := make([]string, 0, len(found))
	for _, b := range found {
		if !b.IsTerminal() {
			eligible = append(eligible, b.ID)
		}
	}

	var updated int64
	if len(eligible) > 0 {
		updated, err = s.bookings.MarkCompleted(eligible)
		if err != nil {
			return nil, fmt.Errorf("failed to mark bookings completed: %w", err)
		}
	}

	return &models.MarkCompletedResult{
		TotalRequested: len(ids),
		TotalFound:     len(found),
		TotalUpdated:   int(updated),
		TotalSkipped:   len(ids) - int(updated),
	}, nil
}
