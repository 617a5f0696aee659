package models

import "time"

// Tutor is a marketplace tutor profile. Weekly availability is persisted as
// flattened AvailabilityEntry rows on the document so the booking side can
// read it back without a second collection.
type Tutor struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email"`
	Bio          string              `bson:"bio,omitempty" json:"bio,omitempty"`
	University   string              `bson:"university,omitempty" json:"university,omitempty"`
	Subjects     []string            `bson:"subjects,omitempty" json:"subjects,omitempty"`
	HourlyRate   float64             `bson:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
	Availability []AvailabilityEntry `bson:"availability,omitempty" json:"availability,omitempty"`
	Status       string              `bson:"status" json:"status"` // "pending", "active"
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// TutorProfileDTO is the public browsing view of a tutor.
type TutorProfileDTO struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Bio          string              `json:"bio,omitempty"`
	University   string              `json:"university,omitempty"`
	Subjects     []string            `json:"subjects,omitempty"`
	HourlyRate   float64             `json:"hourly_rate,omitempty"`
	Availability []AvailabilityEntry `json:"availability,omitempty"`
}

// PublicProfile strips contact and status fields for marketplace listings.
func (t *Tutor) PublicProfile() TutorProfileDTO {
	return TutorProfileDTO{
		ID:           t.ID,
		Name:         t.Name,
		Bio:          t.Bio,
		University:   t.University,
		Subjects:     t.Subjects,
		HourlyRate:   t.HourlyRate,
		Availability: t.Availability,
	}
}

// SetAvailabilityRequest is the payload for replacing a tutor's weekly
// availability in one write.
type SetAvailabilityRequest struct {
	Entries []AvailabilityEntry `json:"entries" binding:"required"`
}
