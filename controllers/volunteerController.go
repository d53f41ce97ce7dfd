package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetVolunteers lists volunteer assignments, newest first.
func GetVolunteers(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	volunteers, total, err := repositories.Volunteers.List(c.Request.Context(),
		repositories.Tenant(user.ChurchID), repositories.ListOptions{
			Sort:  bson.D{{Key: "createdAt", Value: -1}},
			Skip:  skip,
			Limit: limit,
		})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(volunteers, total, page, limit))
}

func GetVolunteer(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Volunteer not found")
		return
	}

	volunteer, err := repositories.Volunteers.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Volunteer not found")
		return
	}

	respondOK(c, volunteer)
}

func CreateVolunteer(c *gin.Context) {
	user := currentUser(c)

	var volunteer models.Volunteer
	if err := c.ShouldBindJSON(&volunteer); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	volunteer.ChurchID = user.ChurchID
	volunteer.ApplyDefaults(time.Now())

	if err := repositories.Volunteers.Insert(c.Request.Context(), &volunteer); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, volunteer)
}

func UpdateVolunteer(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Volunteer not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	volunteer, err := repositories.Volunteers.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Volunteer not found")
		return
	}

	respondOK(c, volunteer)
}

func DeleteVolunteer(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Volunteer not found")
		return
	}

	if err := repositories.Volunteers.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Volunteer not found")
		return
	}

	respondMessage(c, "Volunteer deleted successfully")
}
