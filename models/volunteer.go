package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Volunteer assigns a member to a serving role, optionally within a ministry.
type Volunteer struct {
	Meta       `bson:",inline"`
	MemberID   primitive.ObjectID  `bson:"memberId" json:"memberId" binding:"required"`
	ChurchID   primitive.ObjectID  `bson:"churchId" json:"churchId"`
	Role       string              `bson:"role" json:"role" binding:"required"`
	MinistryID *primitive.ObjectID `bson:"ministryId,omitempty" json:"ministryId,omitempty"`
	StartDate  time.Time           `bson:"startDate" json:"startDate"`
	EndDate    *time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status     string              `bson:"status" json:"status" binding:"omitempty,oneof=active inactive on_leave"`
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (v *Volunteer) ApplyDefaults(now time.Time) {
	if v.StartDate.IsZero() {
		v.StartDate = now
	}
	if v.Status == "" {
		v.Status = "active"
	}
}
