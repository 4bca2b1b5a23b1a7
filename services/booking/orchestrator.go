package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"locart/config"
	"locart/models"
	"locart/services/scheduling"
	"locart/utils"
)

// CreateBooking is the store-mode creation path: staff enter the booking on
// behalf of a walk-in or phoned-in customer. The booking, its line item and
// the payment transaction persist as one atomic unit or not at all.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in *models.CreateBookingInput) (*models.BookingCreated, error) {
	logger := utils.GetLogger()

	if in.ServiceID == "" || in.StylistID == "" || in.Date == "" || in.TimeSlot == "" {
		return nil, validationError("service_id, stylist_id, date and time_slot are required")
	}
	if in.Client == nil {
		return nil, validationError("client is required")
	}

	client, err := s.resolveClient(in.Client)
	if err != nil {
		return nil, err
	}

	svc, err := s.catalog.GetServiceByID(in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", in.ServiceID, err)
	}
	if svc == nil {
		return nil, notFoundError("service not found")
	}
	stylist, err := s.catalog.GetStylistByID(in.StylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylist %s: %w", in.StylistID, err)
	}
	if stylist == nil {
		return nil, notFoundError("stylist not found")
	}

	endTime, err := scheduling.AddMinutes(in.TimeSlot, svc.Duration)
	if err != nil {
		return nil, validationError(err.Error())
	}
	conflict, err := s.conflicts.Check(in.StylistID, in.Date, in.TimeSlot, svc.Duration, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictError("time slot is not available", conflict.Message())
	}

	bookingStatus := normalizeStatus(in.BookingStatus, models.BookingStatusUpcoming)
	paymentStatus := normalizeStatus(in.PaymentStatus, models.PaymentStatusPending)

	payable := in.PayableAmount
	if payable == 0 {
		payable = in.Amount - in.Discount
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		BookingNumber: newBookingNumber(),
		UserID:        client.ID,
		StylistID:     stylist.ID,
		SalonID:       stylist.SalonID,

		Subtotal:      in.Amount,
		TotalDiscount: in.Discount,
		GrandTotal:    in.Amount - in.Discount,
		PayableAmount: payable,

		ServiceDate:      in.Date,
		ServiceStartTime: in.TimeSlot,
		ServiceEndTime:   endTime,
		TotalDuration:    svc.Duration,
		StylistDuration:  svc.Duration,

		BookingMode:   models.BookingModeStore,
		BookingStatus: bookingStatus,
		PaymentStatus: paymentStatus,
		Notes:         in.BookingNote,
	}

	item := models.BookedService{
		ID:            uuid.NewString(),
		BookingID:     booking.ID,
		ServiceID:     svc.ID,
		StylistID:     stylist.ID,
		Quantity:      1,
		UnitPrice:     svc.BasePrice,
		Total:         in.Amount - in.Discount,
		Discount:      in.Discount,
		Duration:      svc.Duration,
		RefundStatus:  models.RefundStatusNone,
		ServiceStatus: models.ServiceStatusPending,
	}

	txnStatus := models.TransactionStatusPending
	if paymentStatus == models.PaymentStatusPaid {
		txnStatus = models.TransactionStatusCompleted
	}
	txn := &models.Transaction{
		ID:                uuid.NewString(),
		UserID:            client.ID,
		BookingID:         booking.ID,
		TransactionType:   models.TransactionTypePayment,
		PaymentMethod:     in.PaymentMethod,
		Amount:            payable,
		NetAmount:         payable,
		Currency:          config.AppConfig.Currency,
		TransactionStatus: txnStatus,
		PaymentStatus:     paymentStatus,
	}
	if txnStatus == models.TransactionStatusCompleted {
		now := time.Now()
		txn.ProcessedAt = &now
	}

	if err := s.bookings.CreateBookingUnit(ctx, booking, []models.BookedService{item}, txn); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, conflictError("time slot is not available", "the slot was taken by a concurrent booking")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("stylistID", stylist.ID),
		zap.String("date", in.Date),
		zap.String("slot", in.TimeSlot))

	return &models.BookingCreated{
		BookingID:     booking.ID,
		BookingStatus: booking.BookingStatus,
		Client: models.ClientSummary{
			ID:    client.ID,
			Name:  client.Name,
			Email: client.EmailAddress,
			Phone: client.PhoneNumber,
		},
		Service: models.ServiceSummary{
			ID:       svc.ID,
			Name:     svc.ServiceName,
			Price:    svc.BasePrice,
			Duration: svc.Duration,
		},
		Stylist: s.stylistSummary(stylist),
		Payment: models.PaymentSummary{
			Amount:        in.Amount,
			Discount:      in.Discount,
			PayableAmount: payable,
			Method:        in.PaymentMethod,
			Status:        paymentStatus,
		},
	}, nil
}

// resolveClient maps the client descriptor of a store-mode request to a user
// record, creating the record and its customer role grouping for new clients.
func (s *DefaultBookingService) resolveClient(in *models.ClientInput) (*models.User, error) {
	switch in.Type {
	case models.ClientTypeExisting:
		if in.UserID == "" {
			return nil, validationError("user_id is required for an existing client")
		}
		user, err := s.catalog.GetUserByID(in.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load client %s: %w", in.UserID, err)
		}
		if user == nil {
			return nil, notFoundError("client not found")
		}
		return user, nil

	case models.ClientTypeNew:
		if in.Name == "" || in.Email == "" || in.Phone == "" {
			return nil, validationError("name, email and phone are required for a new client")
		}
		existing, err := s.catalog.FindUserByEmailOrPhone(in.Email, in.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing client: %w", err)
		}
		if existing != nil {
			return nil, validationError("a client with this email or phone already exists")
		}
		user := &models.User{
			ID:           uuid.NewString(),
			Name:         in.Name,
			EmailAddress: in.Email,
			PhoneNumber:  in.Phone,
			Status:       "active",
		}
		if err := s.catalog.CreateUser(user); err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		if err := s.catalog.EnsureRoleUser(models.RoleCustomer, "Salon customers", user.ID); err != nil {
			utils.GetLogger().Warn("failed to attach customer role",
				zap.String("userID", user.ID), zap.Error(err))
		}
		return user, nil

	default:
		return nil, validationError(fmt.Sprintf("invalid client type %q", in.Type))
	}
}
