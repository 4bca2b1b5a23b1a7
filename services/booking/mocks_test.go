package booking

import (
	"context"

	"github.com/stripe/stripe-go/v76"

	bookingRepo "locart/database/repository/booking"
	"locart/models"
	"locart/services/payment"
	"locart/services/scheduling"
)

// fakeBookingRepo stubs the booking repository with function fields; an
// unstubbed call panics, which keeps the tests honest about what each path
// touches.
type fakeBookingRepo struct {
	bookingRepo.BookingRepository

	createBookingUnit    func(ctx context.Context, b *models.Booking, items []models.BookedService, txn *models.Transaction) error
	refundBookingUnit    func(ctx context.Context, b *models.Booking, refundAmount float64, txn *models.Transaction) error
	updateStatusBulk     func(ctx context.Context, ids []string, status, reason string) ([]string, []string, error)
	getBookingByID       func(id string) (*models.Booking, error)
	updateBooking        func(b *models.Booking) error
	setPaymentState      func(bookingID, paymentStatus, paymentIntentID string) error
	findConflict         func(q bookingRepo.ConflictQuery) (*models.Booking, error)
	findByIDs            func(ids []string) ([]models.Booking, error)
	markCompleted        func(ids []string) (int64, error)
	getLineItems         func(bookingID string) ([]models.BookedService, error)
	getTransactionByID   func(bookingID string) (*models.Transaction, error)
	sumCompletedPayments func(bookingID string) (float64, error)
	sumRefunds           func(bookingID string) (float64, error)
}

func (f *fakeBookingRepo) CreateBookingUnit(ctx context.Context, b *models.Booking, items []models.BookedService, txn *models.Transaction) error {
	return f.createBookingUnit(ctx, b, items, txn)
}

func (f *fakeBookingRepo) RefundBookingUnit(ctx context.Context, b *models.Booking, refundAmount float64, txn *models.Transaction) error {
	return f.refundBookingUnit(ctx, b, refundAmount, txn)
}

func (f *fakeBookingRepo) UpdateStatusBulk(ctx context.Context, ids []string, status, reason string) ([]string, []string, error) {
	return f.updateStatusBulk(ctx, ids, status, reason)
}

func (f *fakeBookingRepo) GetBookingByID(id string) (*models.Booking, error) {
	return f.getBookingByID(id)
}

func (f *fakeBookingRepo) UpdateBooking(b *models.Booking) error {
	return f.updateBooking(b)
}

func (f *fakeBookingRepo) SetPaymentState(bookingID, paymentStatus, paymentIntentID string) error {
	return f.setPaymentState(bookingID, paymentStatus, paymentIntentID)
}

func (f *fakeBookingRepo) FindConflict(q bookingRepo.ConflictQuery) (*models.Booking, error) {
	if f.findConflict == nil {
		return nil, nil
	}
	return f.findConflict(q)
}

func (f *fakeBookingRepo) FindByIDs(ids []string) ([]models.Booking, error) {
	return f.findByIDs(ids)
}

func (f *fakeBookingRepo) MarkCompleted(ids []string) (int64, error) {
	return f.markCompleted(ids)
}

func (f *fakeBookingRepo) GetLineItems(bookingID string) ([]models.BookedService, error) {
	if f.getLineItems == nil {
		return nil, nil
	}
	return f.getLineItems(bookingID)
}

func (f *fakeBookingRepo) GetTransactionByBookingID(bookingID string) (*models.Transaction, error) {
	if f.getTransactionByID == nil {
		return nil, nil
	}
	return f.getTransactionByID(bookingID)
}

func (f *fakeBookingRepo) SumCompletedPayments(bookingID string) (float64, error) {
	return f.sumCompletedPayments(bookingID)
}

func (f *fakeBookingRepo) SumRefunds(bookingID string) (float64, error) {
	return f.sumRefunds(bookingID)
}

// fakeCatalog seeds the catalog with fixed users, services and stylists.
type fakeCatalog struct {
	users    map[string]*models.User
	services map[string]*models.Service
	stylists map[string]*models.Stylist

	findUserByEmailOrPhone func(email, phone string) (*models.User, error)
	createdUsers           []*models.User
	roleAttachments        []string
}

func (f *fakeCatalog) GetUserByID(id string) (*models.User, error) { return f.users[id], nil }

func (f *fakeCatalog) FindUserByEmailOrPhone(email, phone string) (*models.User, error) {
	if f.findUserByEmailOrPhone == nil {
		return nil, nil
	}
	return f.findUserByEmailOrPhone(email, phone)
}

func (f *fakeCatalog) CreateUser(user *models.User) error {
	f.createdUsers = append(f.createdUsers, user)
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeCatalog) ListUserIDs() ([]string, error) {
	ids := make([]string, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeCatalog) EnsureRoleUser(roleName, description, userID string) error {
	f.roleAttachments = append(f.roleAttachments, roleName+":"+userID)
	return nil
}

func (f *fakeCatalog) GetUserRole(userID string) (string, error) { return models.RoleCustomer, nil }

func (f *fakeCatalog) GetServiceByID(id string) (*models.Service, error) { return f.services[id], nil }

func (f *fakeCatalog) GetStylistByID(id string) (*models.Stylist, error) { return f.stylists[id], nil }

func (f *fakeCatalog) CreateStylist(stylist *models.Stylist) error { return nil }

func (f *fakeCatalog) IsHoliday(salonID, date string) (bool, error) { return false, nil }

func (f *fakeCatalog) CreateNotification(n *models.Notification) error { return nil }

func (f *fakeCatalog) CreateNotifications(ns []models.Notification) error { return nil }

// fakeGateway stubs the payment gateway.
type fakeGateway struct {
	createCheckoutSession func(p payment.CheckoutParams) (string, string, error)
	retrieveSession       func(id string) (*stripe.CheckoutSession, error)
	retrieveIntent        func(id string) (*stripe.PaymentIntent, error)
	createRefund          func(intentID string, amount float64) (*stripe.Refund, error)

	refundCalls int
}

func (f *fakeGateway) CreateCheckoutSession(p payment.CheckoutParams) (string, string, error) {
	return f.createCheckoutSession(p)
}

func (f *fakeGateway) RetrieveSession(id string) (*stripe.CheckoutSession, error) {
	return f.retrieveSession(id)
}

func (f *fakeGateway) RetrieveIntent(id string) (*stripe.PaymentIntent, error) {
	return f.retrieveIntent(id)
}

func (f *fakeGateway) CreateRefund(intentID string, amount float64) (*stripe.Refund, error) {
	f.refundCalls++
	return f.createRefund(intentID, amount)
}

// fakeNotifier records notifications.
type fakeNotifier struct {
	notifications []string
	broadcasts    []string
}

func (f *fakeNotifier) Notify(userID, title, message, kind string) {
	f.notifications = append(f.notifications, title)
}

func (f *fakeNotifier) Broadcast(title, message, kind string) {
	f.broadcasts = append(f.broadcasts, title)
}

func newTestService(repo *fakeBookingRepo, catalog *fakeCatalog, gateway *fakeGateway, notifier *fakeNotifier) *DefaultBookingService {
	return NewBookingService(
		repo,
		catalog,
		scheduling.NewConflictValidator(repo, catalog),
		gateway,
		notifier,
	)
}
