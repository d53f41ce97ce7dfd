package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetServicePlans lists service plans, most recent service date first.
func GetServicePlans(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	plans, total, err := repositories.ServicePlans.List(c.Request.Context(),
		repositories.Tenant(user.ChurchID), repositories.ListOptions{
			Sort:  bson.D{{Key: "serviceDate", Value: -1}},
			Skip:  skip,
			Limit: limit,
		})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(plans, total, page, limit))
}

func GetServicePlan(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Service plan not found")
		return
	}

	plan, err := repositories.ServicePlans.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Service plan not found")
		return
	}

	respondOK(c, plan)
}

func CreateServicePlan(c *gin.Context) {
	user := currentUser(c)

	var plan models.ServicePlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan.ChurchID = user.ChurchID

	if err := repositories.ServicePlans.Insert(c.Request.Context(), &plan); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, plan)
}

func UpdateServicePlan(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Service plan not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := repositories.ServicePlans.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Service plan not found")
		return
	}

	respondOK(c, plan)
}

func DeleteServicePlan(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Service plan not found")
		return
	}

	if err := repositories.ServicePlans.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Service plan not found")
		return
	}

	respondMessage(c, "Service plan deleted successfully")
}
