package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetGroups lists groups, newest first, with optional type and name or
// description search filters.
func GetGroups(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	if groupType := c.Query("type"); groupType != "" {
		query["type"] = groupType
	}
	if search := c.Query("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	groups, total, err := repositories.Groups.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(groups, total, page, limit))
}

func GetGroup(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Group not found")
		return
	}

	group, err := repositories.Groups.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Group not found")
		return
	}

	respondOK(c, group)
}

func CreateGroup(c *gin.Context) {
	user := currentUser(c)

	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	group.ChurchID = user.ChurchID
	group.ApplyDefaults()

	if err := repositories.Groups.Insert(c.Request.Context(), &group); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, group)
}

func UpdateGroup(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Group not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	group, err := repositories.Groups.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Group not found")
		return
	}

	respondOK(c, group)
}

func DeleteGroup(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Group not found")
		return
	}

	if err := repositories.Groups.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Group not found")
		return
	}

	respondMessage(c, "Group deleted successfully")
}

// AddGroupMember adds a member to the roster. Adding an existing member is a
// no-op and still succeeds.
func AddGroupMember(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Group not found")
		return
	}

	var input models.AddGroupMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	group, err := repositories.Groups.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id),
		bson.M{"$addToSet": bson.M{"members": input.MemberID}})
	if err != nil {
		respondRepoErr(c, err, "Group not found")
		return
	}

	respondOK(c, group)
}

// RemoveGroupMember removes a member from the roster. Removing an absent
// member succeeds.
func RemoveGroupMember(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Group not found")
		return
	}

	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Group not found")
		return
	}

	group, err := repositories.Groups.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id),
		bson.M{"$pull": bson.M{"members": memberID}})
	if err != nil {
		respondRepoErr(c, err, "Group not found")
		return
	}

	respondOK(c, group)
}
