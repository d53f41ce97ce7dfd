package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ChurchLoop/models"
)

// Package-level stores, bound to mongo collections at startup and swapped
// for in-memory implementations by the test helpers.
var (
	Churches       Store[models.Church]
	Users          Store[models.User]
	Members        Store[models.Member]
	Events         Store[models.Event]
	Attendance     Store[models.Attendance]
	Donations      Store[models.Donation]
	Groups         Store[models.Group]
	Messages       Store[models.Message]
	PrayerRequests Store[models.PrayerRequest]
	Volunteers     Store[models.Volunteer]
	ServicePlans   Store[models.ServicePlan]

	Reports ReportsRepo
)

// UseMongo binds every store to its collection in db.
func UseMongo(db *mongo.Database) {
	Churches = NewMongoStore[models.Church](db.Collection("churches"))
	Users = NewMongoStore[models.User](db.Collection("users"))
	Members = NewMongoStore[models.Member](db.Collection("members"))
	Events = NewMongoStore[models.Event](db.Collection("events"))
	Attendance = NewMongoStore[models.Attendance](db.Collection("attendance"))
	Donations = NewMongoStore[models.Donation](db.Collection("donations"))
	Groups = NewMongoStore[models.Group](db.Collection("groups"))
	Messages = NewMongoStore[models.Message](db.Collection("messages"))
	PrayerRequests = NewMongoStore[models.PrayerRequest](db.Collection("prayerrequests"))
	Volunteers = NewMongoStore[models.Volunteer](db.Collection("volunteers"))
	ServicePlans = NewMongoStore[models.ServicePlan](db.Collection("serviceplans"))
	Reports = NewMongoReports(db)
}

// UseMemory rebinds every store to a fresh in-memory implementation.
func UseMemory() {
	donations := &memoryStore[models.Donation]{}
	members := &memoryStore[models.Member]{}
	attendance := &memoryStore[models.Attendance]{}

	Churches = NewMemoryStore[models.Church]()
	Users = NewMemoryStore[models.User]()
	Members = members
	Events = NewMemoryStore[models.Event]()
	Attendance = attendance
	Donations = donations
	Groups = NewMemoryStore[models.Group]()
	Messages = NewMemoryStore[models.Message]()
	PrayerRequests = NewMemoryStore[models.PrayerRequest]()
	Volunteers = NewMemoryStore[models.Volunteer]()
	ServicePlans = NewMemoryStore[models.ServicePlan]()
	Reports = &memoryReports{donations: donations, members: members, attendance: attendance}
}
