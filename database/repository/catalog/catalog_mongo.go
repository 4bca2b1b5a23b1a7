package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"locart/config"
	"locart/database"
	"locart/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	userColl     *mongo.Collection
	roleColl     *mongo.Collection
	serviceColl  *mongo.Collection
	stylistColl  *mongo.Collection
	holidayColl  *mongo.Collection
	notifColl    *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoCatalogRepo{
		userColl:    db.Collection("users"),
		roleColl:    db.Collection("roles"),
		serviceColl: db.Collection("services"),
		stylistColl: db.Collection("stylists"),
		holidayColl: db.Collection("holidays"),
		notifColl:   db.Collection("notifications"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetUserByID retrieves a user document by ID.
func (r *MongoCatalogRepo) GetUserByID(id string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.userColl.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user with id %s: %w", id, err)
	}
	return &user, nil
}

// FindUserByEmailOrPhone returns the first user matching either contact
// field, or nil when none exists.
func (r *MongoCatalogRepo) FindUserByEmailOrPhone(email, phone string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"email_address": email},
		bson.M{"phone_number": phone},
	}}
	var user models.User
	if err := r.userColl.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up user by email/phone: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user document.
func (r *MongoCatalogRepo) CreateUser(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if _, err := r.userColl.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ListUserIDs returns the ids of all users, for broadcast notifications.
func (r *MongoCatalogRepo) ListUserIDs() ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.userColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

// EnsureRoleUser adds the user to the named role grouping, creating the role
// on first use.
func (r *MongoCatalogRepo) EnsureRoleUser(roleName, description, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var role models.Role
	err := r.roleColl.FindOne(ctx, bson.M{"role_name": roleName}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		role = models.Role{
			ID:          uuid.New().String(),
			RoleName:    roleName,
			Description: description,
			Users:       []string{userID},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := r.roleColl.InsertOne(ctx, role); err != nil {
			return fmt.Errorf("failed to create role %s: %w", roleName, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error fetching role %s: %w", roleName, err)
	}

	update := bson.M{
		"$addToSet": bson.M{"users": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	if _, err := r.roleColl.UpdateOne(ctx, bson.M{"role_name": roleName}, update); err != nil {
		return fmt.Errorf("failed to add user to role %s: %w", roleName, err)
	}
	return nil
}

// GetUserRole returns the first role grouping containing the user, falling
// back to customer when the user belongs to none.
func (r *MongoCatalogRepo) GetUserRole(userID string) (string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var role models.Role
	err := r.roleColl.FindOne(ctx, bson.M{"users": userID}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return models.RoleCustomer, nil
	}
	if err != nil {
		return "", fmt.Errorf("error fetching role for user %s: %w", userID, err)
	}
	return role.RoleName, nil
}

// GetServiceByID retrieves a service document by ID.
func (r *MongoCatalogRepo) GetServiceByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.serviceColl.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching service with id %s: %w", id, err)
	}
	return &svc, nil
}

// GetStylistByID retrieves a stylist document by ID.
func (r *MongoCatalogRepo) GetStylistByID(id string) (*models.Stylist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var stylist models.Stylist
	if err := r.stylistColl.FindOne(ctx, bson.M{"id": id}).Decode(&stylist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching stylist with id %s: %w", id, err)
	}
	return &stylist, nil
}

// CreateStylist inserts a new stylist document.
func (r *MongoCatalogRepo) CreateStylist(stylist *models.Stylist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	stylist.CreatedAt = now
	stylist.UpdatedAt = now
	if stylist.ID == "" {
		stylist.ID = uuid.New().String()
	}

	if _, err := r.stylistColl.InsertOne(ctx, stylist); err != nil {
		return fmt.Errorf("failed to create stylist: %w", err)
	}
	return nil
}

// IsHoliday reports whether the salon has a holiday record for the date.
func (r *MongoCatalogRepo) IsHoliday(salonID, date string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.holidayColl.CountDocuments(ctx, bson.M{"salon_id": salonID, "date": date})
	if err != nil {
		return false, fmt.Errorf("error checking holiday for salon %s on %s: %w", salonID, date, err)
	}
	return count > 0, nil
}

// CreateNotification inserts a single notification record.
func (r *MongoCatalogRepo) CreateNotification(n *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now()

	if _, err := r.notifColl.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// CreateNotifications inserts a batch of notification records.
func (r *MongoCatalogRepo) CreateNotifications(ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(ns))
	for i := range ns {
		if ns[i].ID == "" {
			ns[i].ID = uuid.New().String()
		}
		ns[i].CreatedAt = now
		docs = append(docs, ns[i])
	}
	if _, err := r.notifColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}
