package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a ministry, small group, committee or class with a member roster.
type Group struct {
	Meta            `bson:",inline"`
	Name            string               `bson:"name" json:"name" binding:"required"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	Type            string               `bson:"type" json:"type" binding:"required,oneof=small_group ministry committee class other"`
	LeaderID        primitive.ObjectID   `bson:"leaderId" json:"leaderId"`
	ChurchID        primitive.ObjectID   `bson:"churchId" json:"churchId"`
	Members         []primitive.ObjectID `bson:"members" json:"members"`
	MeetingSchedule string               `bson:"meetingSchedule,omitempty" json:"meetingSchedule,omitempty"`
	Location        string               `bson:"location,omitempty" json:"location,omitempty"`
	ImageURL        string               `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsActive        *bool                `bson:"isActive" json:"isActive"`
	CustomFields    map[string]any       `bson:"customFields,omitempty" json:"customFields,omitempty"`
}

func (g *Group) ApplyDefaults() {
	if g.IsActive == nil {
		active := true
		g.IsActive = &active
	}
	if g.Members == nil {
		g.Members = []primitive.ObjectID{}
	}
}

type AddGroupMemberInput struct {
	MemberID primitive.ObjectID `json:"memberId" binding:"required"`
}
