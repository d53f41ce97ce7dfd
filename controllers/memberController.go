package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetMembers lists the church's members, newest first, with optional status
// and name/email search filters.
func GetMembers(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	if status := c.Query("status"); status != "" && status != "all" {
		query["membershipStatus"] = status
	}
	if search := c.Query("search"); search != "" {
		query["$or"] = []bson.M{
			{"firstName": bson.M{"$regex": search, "$options": "i"}},
			{"lastName": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	members, total, err := repositories.Members.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(members, total, page, limit))
}

func GetMember(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Member not found")
		return
	}

	member, err := repositories.Members.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Member not found")
		return
	}

	respondOK(c, member)
}

func CreateMember(c *gin.Context) {
	user := currentUser(c)

	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	member.ChurchID = user.ChurchID
	member.ApplyDefaults()

	if err := repositories.Members.Insert(c.Request.Context(), &member); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, member)
}

func UpdateMember(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Member not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	member, err := repositories.Members.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Member not found")
		return
	}

	respondOK(c, member)
}

func DeleteMember(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Member not found")
		return
	}

	if err := repositories.Members.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Member not found")
		return
	}

	respondMessage(c, "Member deleted successfully")
}
