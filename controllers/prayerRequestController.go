package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetPrayerRequests lists prayer requests, newest first, optionally filtered
// by status.
func GetPrayerRequests(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	requests, total, err := repositories.PrayerRequests.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(requests, total, page, limit))
}

func GetPrayerRequest(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Prayer request not found")
		return
	}

	request, err := repositories.PrayerRequests.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Prayer request not found")
		return
	}

	respondOK(c, request)
}

// CreatePrayerRequest records a request; the requester defaults to the caller.
func CreatePrayerRequest(c *gin.Context) {
	user := currentUser(c)

	var request models.PrayerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	request.ChurchID = user.ChurchID
	if request.RequesterID.IsZero() {
		request.RequesterID = user.ID
	}
	request.ApplyDefaults()

	if err := repositories.PrayerRequests.Insert(c.Request.Context(), &request); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, request)
}

func UpdatePrayerRequest(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Prayer request not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := repositories.PrayerRequests.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Prayer request not found")
		return
	}

	respondOK(c, request)
}

func DeletePrayerRequest(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Prayer request not found")
		return
	}

	if err := repositories.PrayerRequests.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Prayer request not found")
		return
	}

	respondMessage(c, "Prayer request deleted successfully")
}
