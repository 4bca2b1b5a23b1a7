package models

import "time"

// WorkingHours bounds a stylist's bookable day with "15:04" wall-clock times.
type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Stylist is the single schedulable resource of a salon calendar.
type Stylist struct {
	ID      string `bson:"id" json:"id"`
	UserID  string `bson:"user_id" json:"user_id"`
	SalonID string `bson:"salon_id" json:"salon_id"`

	Bio             string `bson:"bio,omitempty" json:"bio,omitempty"`
	ExperienceYears int    `bson:"experience_years" json:"experience_years"`
	Specialties     string `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Status          string `bson:"status" json:"status"`

	Services []string `bson:"services" json:"services"`

	// WorkingDays holds weekday names ("Monday" .. "Sunday").
	WorkingDays  []string     `bson:"working_days" json:"workingDays"`
	WorkingHours WorkingHours `bson:"working_hours" json:"workingHours"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultWorkingDays is the onboarding fallback schedule.
func DefaultWorkingDays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
}

// DefaultWorkingHours is the onboarding fallback day window.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: "09:00", End: "17:00"}
}
