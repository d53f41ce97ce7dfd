package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
	"github.com/ChurchLoop/services"
)

// GetEvents lists the church calendar, most recent start date first, with
// optional type and title/description/location search filters.
func GetEvents(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	if eventType := c.Query("type"); eventType != "" {
		query["type"] = eventType
	}
	if search := c.Query("search"); search != "" {
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"location": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	events, total, err := repositories.Events.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "startDate", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(events, total, page, limit))
}

func GetEvent(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	event, err := repositories.Events.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Event not found")
		return
	}

	respondOK(c, event)
}

// CreateEvent records a new event with the caller as organizer.
func CreateEvent(c *gin.Context) {
	user := currentUser(c)

	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	event.ChurchID = user.ChurchID
	event.OrganizerID = user.ID

	if err := repositories.Events.Insert(c.Request.Context(), &event); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, event)
}

func UpdateEvent(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	event, err := repositories.Events.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Event not found")
		return
	}

	respondOK(c, event)
}

func DeleteEvent(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	if err := repositories.Events.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Event not found")
		return
	}

	respondMessage(c, "Event deleted successfully")
}

// RemindEvent emails every user in the church a reminder for the event.
func RemindEvent(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	event, err := repositories.Events.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Event not found")
		return
	}

	users, _, err := repositories.Users.List(c.Request.Context(), repositories.Tenant(user.ChurchID), repositories.ListOptions{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.IsActive && u.Email != "" {
			emails = append(emails, u.Email)
		}
	}

	if err := services.GetEmailService().SendEventReminder(emails, event.Title, event.Location, event.StartDate); err != nil {
		log.Printf("event reminder for %s failed: %v", event.ID.Hex(), err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(c, "Event reminder sent")
}
