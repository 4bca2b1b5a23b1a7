package catalogRepo

import "locart/models"

// CatalogRepository is the identity/catalog collaborator surface the engine
// consumes: customer, service, stylist and holiday lookups by id, plus the
// narrow writes booking creation and stylist onboarding need.
type CatalogRepository interface {
	// Users.
	GetUserByID(id string) (*models.User, error)
	FindUserByEmailOrPhone(email, phone string) (*models.User, error)
	CreateUser(user *models.User) error
	ListUserIDs() ([]string, error)

	// Roles.
	EnsureRoleUser(roleName, description, userID string) error
	GetUserRole(userID string) (string, error)

	// Catalog.
	GetServiceByID(id string) (*models.Service, error)
	GetStylistByID(id string) (*models.Stylist, error)
	CreateStylist(stylist *models.Stylist) error

	// Holidays.
	IsHoliday(salonID, date string) (bool, error)

	// Notifications (fire-and-forget records).
	CreateNotification(n *models.Notification) error
	CreateNotifications(ns []models.Notification) error
}
