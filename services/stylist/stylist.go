package stylist

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	catalogRepo "locart/database/repository/catalog"
	"locart/models"
	"locart/services/notification"
	"locart/services/scheduling"
	"locart/utils"
)

// OnboardInput is the stylist onboarding payload. Working days and hours
// fall back to the platform defaults when omitted.
type OnboardInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`

	SalonID         string               `json:"salon_id"`
	Bio             string               `json:"bio,omitempty"`
	ExperienceYears int                  `json:"experience_years,omitempty"`
	Specialties     string               `json:"specialties,omitempty"`
	Services        []string             `json:"services,omitempty"`
	WorkingDays     []string             `json:"workingDays,omitempty"`
	WorkingHours    *models.WorkingHours `json:"workingHours,omitempty"`
}

// Service onboards stylists and exposes their open timeslots.
type Service struct {
	catalog      catalogRepo.CatalogRepository
	availability *scheduling.AvailabilityEngine
	notifier     notification.Notifier
}

func NewService(catalog catalogRepo.CatalogRepository, availability *scheduling.AvailabilityEngine, notifier notification.Notifier) *Service {
	return &Service{catalog: catalog, availability: availability, notifier: notifier}
}

// Onboard creates the stylist's user account, the stylist record and its
// role grouping, then announces the new stylist to all users.
func (s *Service) Onboard(in *OnboardInput) (*models.Stylist, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	existing, err := s.catalog.FindUserByEmailOrPhone(in.Email, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email or phone already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		EmailAddress: in.Email,
		PhoneNumber:  in.Phone,
		PasswordHash: string(hash),
		Status:       "active",
	}
	if err := s.catalog.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create stylist user: %w", err)
	}
	if err := s.catalog.EnsureRoleUser(models.RoleStylist, "Salon stylists", user.ID); err != nil {
		utils.GetLogger().Warn("failed to attach stylist role",
			zap.String("userID", user.ID), zap.Error(err))
	}

	days := in.WorkingDays
	if len(days) == 0 {
		days = models.DefaultWorkingDays()
	}
	hours := models.DefaultWorkingHours()
	if in.WorkingHours != nil {
		hours = *in.WorkingHours
	}

	stylist := &models.Stylist{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		SalonID:         in.SalonID,
		Bio:             in.Bio,
		ExperienceYears: in.ExperienceYears,
		Specialties:     in.Specialties,
		Status:          "active",
		Services:        in.Services,
		WorkingDays:     days,
		WorkingHours:    hours,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := s.catalog.CreateStylist(stylist); err != nil {
		return nil, fmt.Errorf("failed to create stylist: %w", err)
	}

	s.notifier.Broadcast("New stylist joined",
		fmt.Sprintf("%s is now accepting appointments.", in.Name),
		"stylist")

	utils.GetLogger().Info("stylist onboarded",
		zap.String("stylistID", stylist.ID), zap.String("userID", user.ID))
	return stylist, nil
}

// Timeslots returns the open slots for a stylist on one date, sized by the
// requested service's duration.
func (s *Service) Timeslots(stylistID, serviceID, date string) (models.DaySlots, error) {
	stylist, svc, err := s.loadPair(stylistID, serviceID)
	if err != nil {
		return models.DaySlots{}, err
	}
	return s.availability.DaySlots(stylist, date, svc.Duration)
}

// WeekTimeslots returns the open slots for the seven days starting at from.
func (s *Service) WeekTimeslots(stylistID, serviceID, from string) (models.WeekAvailability, error) {
	stylist, svc, err := s.loadPair(stylistID, serviceID)
	if err != nil {
		return nil, err
	}
	return s.availability.WeekSlots(stylist, from, svc.Duration)
}

func (s *Service) loadPair(stylistID, serviceID string) (*models.Stylist, *models.Service, error) {
	stylist, err := s.catalog.GetStylistByID(stylistID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stylist %s: %w", stylistID, err)
	}
	if stylist == nil {
		return nil, nil, fmt.Errorf("stylist not found")
	}
	svc, err := s.catalog.GetServiceByID(serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load service %s: %w", serviceID, err)
	}
	if svc == nil {
		return nil, nil, fmt.Errorf("service not found")
	}
	return stylist, svc, nil
}
