package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrayerRequest tracks a request raised by (or on behalf of) a member.
type PrayerRequest struct {
	Meta        `bson:",inline"`
	RequesterID primitive.ObjectID   `bson:"requesterId" json:"requesterId"`
	ChurchID    primitive.ObjectID   `bson:"churchId" json:"churchId"`
	Title       string               `bson:"title" json:"title" binding:"required"`
	Description string               `bson:"description" json:"description" binding:"required"`
	Category    string               `bson:"category,omitempty" json:"category,omitempty"`
	IsPublic    bool                 `bson:"isPublic" json:"isPublic"`
	Status      string               `bson:"status" json:"status" binding:"omitempty,oneof=active answered archived"`
	PrayedBy    []primitive.ObjectID `bson:"prayedBy" json:"prayedBy"`
}

func (p *PrayerRequest) ApplyDefaults() {
	if p.Status == "" {
		p.Status = "active"
	}
	if p.PrayedBy == nil {
		p.PrayedBy = []primitive.ObjectID{}
	}
}
