package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a person tracked by a church, optionally linked to a login User.
type Member struct {
	Meta             `bson:",inline"`
	UserID           *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	ChurchID         primitive.ObjectID  `bson:"churchId" json:"churchId"`
	FirstName        string              `bson:"firstName" json:"firstName" binding:"required"`
	LastName         string              `bson:"lastName" json:"lastName" binding:"required"`
	Email            string              `bson:"email,omitempty" json:"email,omitempty" binding:"omitempty,email"`
	Phone            string              `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth      *time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender           string              `bson:"gender,omitempty" json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Address          *Address            `bson:"address,omitempty" json:"address,omitempty"`
	ProfileImage     string              `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	MembershipStatus string              `bson:"membershipStatus" json:"membershipStatus" binding:"omitempty,oneof=active inactive visitor member"`
	JoinDate         *time.Time          `bson:"joinDate,omitempty" json:"joinDate,omitempty"`
	FamilyID         *primitive.ObjectID `bson:"familyId,omitempty" json:"familyId,omitempty"`
	FamilyRole       string              `bson:"familyRole,omitempty" json:"familyRole,omitempty" binding:"omitempty,oneof=head spouse child other"`
	CustomFields     map[string]any      `bson:"customFields,omitempty" json:"customFields,omitempty"`
	Tags             []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes            string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ApplyDefaults fills the fields the schema defaults when absent.
func (m *Member) ApplyDefaults() {
	if m.MembershipStatus == "" {
		m.MembershipStatus = "visitor"
	}
}
