package booking

import (
	"fmt"

	"locart/models"
)

// ListBookings returns the filtered, paginated booking list with denormalized
// client, stylist and service summaries per row.
func (s *DefaultBookingService) ListBookings(filter models.BookingFilter) ([]models.BookingListItem, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}

	bookings, total, err := s.bookings.ListBookings(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	items := make([]models.BookingListItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, models.BookingListItem{
			BookingID:     b.ID,
			Date:          b.ServiceDate,
			Time:          b.ServiceStartTime,
			Client:        s.clientSummary(b.UserID),
			Stylist:       s.stylistSummaryByID(b.StylistID),
			Services:      s.serviceSummaries(b.ID),
			Amount:        b.GrandTotal,
			Discount:      b.TotalDiscount,
			Status:        b.BookingStatus,
			PaymentStatus: b.PaymentStatus,
			BookingMode:   b.BookingMode,
		})
	}

	return items, &models.Pagination{Page: filter.Page, PerPage: filter.PerPage, Total: total}, nil
}

// GetBookingDetail assembles the full denormalized view of one booking:
// line items, latest transaction, and the invoice block.
func (s *DefaultBookingService) GetBookingDetail(id string) (*models.BookingDetail, error) {
	b, err := s.loadBooking(id)
	if err != nil {
		return nil, err
	}

	detail := &models.BookingDetail{
		BookingID:   b.ID,
		InvoiceID:   b.BookingNumber,
		Date:        b.ServiceDate,
		Time:        b.ServiceStartTime,
		BookedOn:    b.CreatedAt,
		Status:      b.BookingStatus,
		BookingMode: b.BookingMode,
		Client:      s.clientSummary(b.UserID),
		Stylist:     s.stylistSummaryByID(b.StylistID),
		Services:    s.serviceSummaries(b.ID),
		Payment: models.PaymentDetail{
			PaymentStatus: b.PaymentStatus,
			AmountPaid:    b.PayableAmount,
		},
		Invoice: models.InvoiceDetail{
			ServiceCharges:  b.Subtotal,
			Taxes:           b.TotalTaxes,
			LoyaltyDiscount: b.TotalDiscount,
			TotalPayable:    b.PayableAmount,
		},
	}

	if txn, err := s.bookings.GetTransactionByBookingID(id); err == nil && txn != nil {
		detail.Payment.PaymentMethod = txn.PaymentMethod
		detail.Payment.TransactionID = txn.ID
		detail.Payment.Remarks = txn.Remarks
		detail.Payment.AmountPaid = txn.Amount
	}
	return detail, nil
}

func (s *DefaultBookingService) clientSummary(userID string) *models.ClientSummary {
	user, err := s.catalog.GetUserByID(userID)
	if err != nil || user == nil {
		return nil
	}
	return &models.ClientSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.EmailAddress,
		Phone: user.PhoneNumber,
	}
}

func (s *DefaultBookingService) stylistSummaryByID(stylistID string) *models.StylistSummary {
	stylist, err := s.catalog.GetStylistByID(stylistID)
	if err != nil || stylist == nil {
		return nil
	}
	summary := s.stylistSummary(stylist)
	return &summary
}

func (s *DefaultBookingService) serviceSummaries(bookingID string) []models.ServiceSummary {
	items, err := s.bookings.GetLineItems(bookingID)
	if err != nil {
		return nil
	}
	summaries := make([]models.ServiceSummary, 0, len(items))
	for _, it := range items {
		summary := models.ServiceSummary{ID: it.ServiceID, Price: it.UnitPrice, Duration: it.Duration}
		if svc, err := s.catalog.GetServiceByID(it.ServiceID); err == nil && svc != nil {
			summary.Name = svc.ServiceName
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
