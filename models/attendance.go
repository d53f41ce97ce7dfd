package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance joins a member to an event on a given date. There is no unique
// index on (member, event, date); bulk inserts can produce duplicates.
type Attendance struct {
	Meta         `bson:",inline"`
	MemberID     primitive.ObjectID `bson:"memberId" json:"memberId" binding:"required"`
	EventID      primitive.ObjectID `bson:"eventId" json:"eventId" binding:"required"`
	ChurchID     primitive.ObjectID `bson:"churchId" json:"churchId"`
	Date         time.Time          `bson:"date" json:"date" binding:"required"`
	Status       string             `bson:"status" json:"status" binding:"omitempty,oneof=present absent late excused"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CheckedInAt  *time.Time         `bson:"checkedInAt,omitempty" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time         `bson:"checkedOutAt,omitempty" json:"checkedOutAt,omitempty"`
}

func (a *Attendance) ApplyDefaults() {
	if a.Status == "" {
		a.Status = "present"
	}
}

type BulkAttendanceInput struct {
	Records []Attendance `json:"records" binding:"required,dive"`
}

// AttendanceStats is the payload of GET /api/attendance/stats.
type AttendanceStats struct {
	Total   int64 `json:"total"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
}
