package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recurrence describes how an event repeats.
type Recurrence struct {
	Frequency  string     `bson:"frequency,omitempty" json:"frequency,omitempty" binding:"omitempty,oneof=daily weekly monthly yearly"`
	Interval   int        `bson:"interval,omitempty" json:"interval,omitempty"`
	EndDate    *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	DaysOfWeek []int      `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
}

// Event is a scheduled occurrence on the church calendar.
type Event struct {
	Meta                 `bson:",inline"`
	Title                string               `bson:"title" json:"title" binding:"required"`
	Description          string               `bson:"description,omitempty" json:"description,omitempty"`
	Type                 string               `bson:"type" json:"type" binding:"required,oneof=service meeting class social outreach other"`
	StartDate            time.Time            `bson:"startDate" json:"startDate" binding:"required"`
	EndDate              *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Location             string               `bson:"location,omitempty" json:"location,omitempty"`
	OrganizerID          primitive.ObjectID   `bson:"organizerId" json:"organizerId"`
	ChurchID             primitive.ObjectID   `bson:"churchId" json:"churchId"`
	Attendees            []primitive.ObjectID `bson:"attendees,omitempty" json:"attendees,omitempty"`
	Capacity             *int                 `bson:"capacity,omitempty" json:"capacity,omitempty"`
	RegistrationRequired bool                 `bson:"registrationRequired" json:"registrationRequired"`
	ImageURL             string               `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Recurring            *Recurrence          `bson:"recurring,omitempty" json:"recurring,omitempty"`
	CustomFields         map[string]any       `bson:"customFields,omitempty" json:"customFields,omitempty"`
}
