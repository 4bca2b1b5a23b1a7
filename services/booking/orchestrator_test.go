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

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		users: map[string]*models.User{
			"user-1": {ID: "user-1", Name: "Ann Lee", EmailAddress: "ann@example.com", PhoneNumber: "111"},
		},
		services: map[string]*models.Service{
			"svc-1": {ID: "svc-1", ServiceName: "Haircut", BasePrice: 50, Duration: 60},
		},
		stylists: map[string]*models.Stylist{
			"stylist-1": {ID: "stylist-1", UserID: "user-9", SalonID: "salon-1"},
		},
	}
}

func storeInput() *models.CreateBookingInput {
	return &models.CreateBookingInput{
		Client:        &models.ClientInput{Type: models.ClientTypeExisting, UserID: "user-1"},
		ServiceID:     "svc-1",
		StylistID:     "stylist-1",
		Date:          "2024-06-03",
		TimeSlot:      "10:00",
		Amount:        50,
		PaymentStatus: "paid",
		PaymentMethod: "cash",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	var gotBooking *models.Booking
	var gotItems []models.BookedService
	var gotTxn *models.Transaction

	repo := &fakeBookingRepo{
		createBookingUnit: func(ctx context.Context, b *models.Booking, items []models.BookedService, txn *models.Transaction) error {
			gotBooking, gotItems, gotTxn = b, items, txn
			return nil
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	created, err := svc.CreateBooking(context.Background(), storeInput())
	require.NoError(t, err)
	require.NotNil(t, gotBooking)

	assert.Equal(t, models.BookingModeStore, gotBooking.BookingMode)
	assert.Equal(t, models.BookingStatusUpcoming, gotBooking.BookingStatus)
	assert.Equal(t, "10:00", gotBooking.ServiceStartTime)
	assert.Equal(t, "11:00", gotBooking.ServiceEndTime)
	assert.Equal(t, 60, gotBooking.TotalDuration)
	assert.Equal(t, 50.0, gotBooking.PayableAmount)

	require.Len(t, gotItems, 1)
	assert.Equal(t, gotBooking.ID, gotItems[0].BookingID)
	assert.Equal(t, "svc-1", gotItems[0].ServiceID)

	// Paid at the counter: the payment transaction completes immediately.
	require.NotNil(t, gotTxn)
	assert.Equal(t, models.TransactionTypePayment, gotTxn.TransactionType)
	assert.Equal(t, models.TransactionStatusCompleted, gotTxn.TransactionStatus)

	assert.Equal(t, gotBooking.ID, created.BookingID)
	assert.Equal(t, "Ann Lee", created.Client.Name)
	assert.Equal(t, "Haircut", created.Service.Name)
	assert.Equal(t, models.PaymentStatusPaid, created.Payment.Status)
}

func TestCreateBookingDiscountedLineItemSumsToGrandTotal(t *testing.T) {
	var gotBooking *models.Booking
	var gotItems []models.BookedService
	repo := &fakeBookingRepo{
		createBookingUnit: func(ctx context.Context, b *models.Booking, items []models.BookedService, txn *models.Transaction) error {
			gotBooking, gotItems = b, items
			return nil
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.Discount = 10
	_, err := svc.CreateBooking(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 40.0, gotBooking.GrandTotal)
	require.Len(t, gotItems, 1)
	assert.Equal(t, 10.0, gotItems[0].Discount)

	var lineTotal float64
	for _, it := range gotItems {
		lineTotal += it.Total
	}
	assert.Equal(t, gotBooking.GrandTotal, lineTotal)
}

func TestCreateBookingPendingTransactionWhenUnpaid(t *testing.T) {
	var gotTxn *models.Transaction
	repo := &fakeBookingRepo{
		createBookingUnit: func(ctx context.Context, b *models.Booking, items []models.BookedService, txn *models.Transaction) error {
			gotTxn = txn
			return nil
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.PaymentStatus = "pending"
	_, err := svc.CreateBooking(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, gotTxn.TransactionStatus)
}

func TestCreateBookingMissingFields(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.TimeSlot = ""
	_, err := svc.CreateBooking(context.Background(), in)

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, se.Status)
}

func TestCreateBookingExistingClientNotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.Client = &models.ClientInput{Type: models.ClientTypeExisting, UserID: "nobody"}
	_, err := svc.CreateBooking(context.Background(), in)

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, se.Status)
}

func TestCreateBookingNewClient(t *testing.T) {
	catalog := testCatalog()
	repo := &fakeBookingRepo{
		createBookingUnit: func(context.Context, *models.Booking, []models.BookedService, *models.Transaction) error {
			return nil
		},
	}
	svc := newTestService(repo, catalog, &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.Client = &models.ClientInput{Type: models.ClientTypeNew, Name: "Bo Kim", Email: "bo@example.com", Phone: "222"}
	created, err := svc.CreateBooking(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, catalog.createdUsers, 1)
	assert.Equal(t, "Bo Kim", catalog.createdUsers[0].Name)
	assert.Equal(t, []string{"customer:" + catalog.createdUsers[0].ID}, catalog.roleAttachments)
	assert.Equal(t, "Bo Kim", created.Client.Name)
}

func TestCreateBookingNewClientDuplicate(t *testing.T) {
	catalog := testCatalog()
	catalog.findUserByEmailOrPhone = func(email, phone string) (*models.User, error) {
		return catalog.users["user-1"], nil
	}
	svc := newTestService(&fakeBookingRepo{}, catalog, &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.Client = &models.ClientInput{Type: models.ClientTypeNew, Name: "Ann Lee", Email: "ann@example.com", Phone: "111"}
	_, err := svc.CreateBooking(context.Background(), in)

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Empty(t, catalog.createdUsers)
}

func TestCreateBookingInvalidClientType(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.Client = &models.ClientInput{Type: "guest"}
	_, err := svc.CreateBooking(context.Background(), in)

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, se.Status)
}

func TestCreateBookingConflictNamesCollision(t *testing.T) {
	repo := &fakeBookingRepo{
		findConflict: func(q bookingRepo.ConflictQuery) (*models.Booking, error) {
			return &models.Booking{
				ID:               "b-existing",
				ServiceStartTime: "10:00",
				ServiceEndTime:   "11:00",
			}, nil
		},
		getLineItems: func(bookingID string) ([]models.BookedService, error) {
			return []models.BookedService{{ServiceID: "svc-1"}}, nil
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	in := storeInput()
	in.TimeSlot = "10:30"
	_, err := svc.CreateBooking(context.Background(), in)

	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Contains(t, se.Reason, "Haircut")
	assert.Contains(t, se.Reason, "10:00 to 11:00")
}

func TestCreateBookingAtomicUnitFailure(t *testing.T) {
	repo := &fakeBookingRepo{
		createBookingUnit: func(context.Context, *models.Booking, []models.BookedService, *models.Transaction) error {
			return assert.AnError
		},
	}
	svc := newTestService(repo, testCatalog(), &fakeGateway{}, &fakeNotifier{})

	_, err := svc.CreateBooking(context.Background(), storeInput())
	require.Error(t, err)
	_, ok := AsServiceError(err)
	assert.False(t, ok)
}
