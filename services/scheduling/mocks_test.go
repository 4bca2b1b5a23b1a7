package scheduling

import (
	bookingRepo "locart/database/repository/booking"
	"locart/models"
)

// fakeBookingRepo stubs the booking repository with function fields; only the
// methods the scheduling engine touches are wired.
type fakeBookingRepo struct {
	bookingRepo.BookingRepository

	findConflict         func(q bookingRepo.ConflictQuery) (*models.Booking, error)
	listByStylistAndDate func(stylistID, date string, statuses []string) ([]models.Booking, error)
	getLineItems         func(bookingID string) ([]models.BookedService, error)
}

func (f *fakeBookingRepo) FindConflict(q bookingRepo.ConflictQuery) (*models.Booking, error) {
	return f.findConflict(q)
}

func (f *fakeBookingRepo) ListByStylistAndDate(stylistID, date string, statuses []string) ([]models.Booking, error) {
	return f.listByStylistAndDate(stylistID, date, statuses)
}

func (f *fakeBookingRepo) GetLineItems(bookingID string) ([]models.BookedService, error) {
	return f.getLineItems(bookingID)
}

// fakeCatalog stubs the catalog lookups the scheduling engine needs.
type fakeCatalog struct {
	isHoliday      func(salonID, date string) (bool, error)
	getServiceByID func(id string) (*models.Service, error)
}

func (f *fakeCatalog) GetUserByID(id string) (*models.User, error) { return nil, nil }
func (f *fakeCatalog) FindUserByEmailOrPhone(email, phone string) (*models.User, error) {
	return nil, nil
}
func (f *fakeCatalog) CreateUser(user *models.User) error                        { return nil }
func (f *fakeCatalog) ListUserIDs() ([]string, error)                            { return nil, nil }
func (f *fakeCatalog) EnsureRoleUser(roleName, description, userID string) error { return nil }
func (f *fakeCatalog) GetUserRole(userID string) (string, error)                 { return "", nil }
func (f *fakeCatalog) GetStylistByID(id string) (*models.Stylist, error)         { return nil, nil }
func (f *fakeCatalog) CreateStylist(stylist *models.Stylist) error               { return nil }
func (f *fakeCatalog) CreateNotification(n *models.Notification) error           { return nil }
func (f *fakeCatalog) CreateNotifications(ns []models.Notification) error        { return nil }

func (f *fakeCatalog) GetServiceByID(id string) (*models.Service, error) {
	if f.getServiceByID == nil {
		return nil, nil
	}
	return f.getServiceByID(id)
}

func (f *fakeCatalog) IsHoliday(salonID, date string) (bool, error) {
	if f.isHoliday == nil {
		return false, nil
	}
	return f.isHoliday(salonID, date)
}
