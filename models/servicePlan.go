package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceItem is one entry in the order of service. Order values are caller
// owned; the server does not enforce uniqueness or contiguity.
type ServiceItem struct {
	Type        string               `bson:"type" json:"type" binding:"required,oneof=song prayer scripture sermon announcement offering other"`
	Title       string               `bson:"title" json:"title" binding:"required"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Duration    *int                 `bson:"duration,omitempty" json:"duration,omitempty"`
	Order       int                  `bson:"order" json:"order"`
	AssignedTo  []primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Resources   []string             `bson:"resources,omitempty" json:"resources,omitempty"`
}

// ServiceRole assigns a member to a named role for the service.
type ServiceRole struct {
	Role     string             `bson:"role" json:"role" binding:"required"`
	MemberID primitive.ObjectID `bson:"memberId" json:"memberId" binding:"required"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ServicePlan lays out a single service.
type ServicePlan struct {
	Meta           `bson:",inline"`
	ChurchID       primitive.ObjectID `bson:"churchId" json:"churchId"`
	ServiceDate    time.Time          `bson:"serviceDate" json:"serviceDate" binding:"required"`
	ServiceType    string             `bson:"serviceType" json:"serviceType" binding:"required"`
	Title          string             `bson:"title,omitempty" json:"title,omitempty"`
	OrderOfService []ServiceItem      `bson:"orderOfService" json:"orderOfService" binding:"omitempty,dive"`
	AssignedRoles  []ServiceRole      `bson:"assignedRoles" json:"assignedRoles" binding:"omitempty,dive"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
}
