package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an in-app, email, sms or push communication. Announcements carry
// no explicit recipients; they are visible to the whole church.
type Message struct {
	Meta           `bson:",inline"`
	ChurchID       primitive.ObjectID   `bson:"churchId" json:"churchId"`
	SenderID       primitive.ObjectID   `bson:"senderId" json:"senderId"`
	RecipientIDs   []primitive.ObjectID `bson:"recipientIds" json:"recipientIds"`
	Subject        string               `bson:"subject" json:"subject" binding:"required"`
	Body           string               `bson:"body" json:"body" binding:"required"`
	Type           string               `bson:"type" json:"type" binding:"omitempty,oneof=email sms push in_app announcement"`
	Priority       string               `bson:"priority" json:"priority" binding:"omitempty,oneof=low medium high"`
	ReadBy         []primitive.ObjectID `bson:"readBy" json:"readBy"`
	IsAnnouncement bool                 `bson:"isAnnouncement" json:"isAnnouncement"`
	ExpiresAt      *time.Time           `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

func (m *Message) ApplyDefaults() {
	if m.Type == "" {
		m.Type = "in_app"
	}
	if m.Priority == "" {
		m.Priority = "medium"
	}
	if m.RecipientIDs == nil {
		m.RecipientIDs = []primitive.ObjectID{}
	}
	if m.ReadBy == nil {
		m.ReadBy = []primitive.ObjectID{}
	}
}

// ReadBy membership check.
func (m Message) IsReadBy(userID primitive.ObjectID) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// MessageView augments a message with the caller's read state.
type MessageView struct {
	Message
	IsRead bool `json:"isRead"`
}

type SendMessageInput struct {
	RecipientIDs   []primitive.ObjectID `json:"recipientIds"`
	Subject        string               `json:"subject" binding:"required"`
	Body           string               `json:"body" binding:"required"`
	Type           string               `json:"type" binding:"omitempty,oneof=email sms push in_app announcement"`
	Priority       string               `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsAnnouncement bool                 `json:"isAnnouncement"`
	ExpiresAt      *time.Time           `json:"expiresAt"`
}
