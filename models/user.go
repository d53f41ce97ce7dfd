package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a login identity. Email uniqueness is global, not per church.
type User struct {
	Meta         `bson:",inline"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Role         string             `bson:"role" json:"role"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ChurchID     primitive.ObjectID `bson:"churchId,omitempty" json:"churchId,omitempty"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
}

// UserRoles is the fixed role enumeration.
var UserRoles = []string{
	"senior_pastor",
	"pastor",
	"elder",
	"admin",
	"secretary",
	"treasurer",
	"ministry_leader",
	"volunteer_coordinator",
	"member",
	"visitor",
}

// PublicUser is the shape returned by auth and profile endpoints.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Email     string             `json:"email"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Phone     string             `json:"phone,omitempty"`
	Role      string             `json:"role"`
}

// Public strips the credential fields from a user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
	}
}

type RegisterInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	ChurchName string `json:"churchName" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
