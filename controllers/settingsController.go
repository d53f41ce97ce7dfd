package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetChurchSettings returns the caller's church record.
func GetChurchSettings(c *gin.Context) {
	user := currentUser(c)

	church, err := repositories.Churches.FindOne(c.Request.Context(), bson.M{"_id": user.ChurchID})
	if err != nil {
		respondRepoErr(c, err, "Church not found")
		return
	}

	respondOK(c, church)
}

type updateChurchInput struct {
	ChurchName string          `json:"churchName"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Phone      string          `json:"phone"`
	Website    string          `json:"website"`
	Address    *models.Address `json:"address"`
	Timezone   string          `json:"timezone"`
	Currency   string          `json:"currency"`
	DateFormat string          `json:"dateFormat"`
}

// UpdateChurchSettings updates the settable church fields only; everything
// else on the record is ignored.
func UpdateChurchSettings(c *gin.Context) {
	user := currentUser(c)

	var input updateChurchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if input.ChurchName != "" {
		fields["name"] = input.ChurchName
	}
	if input.Email != "" {
		fields["email"] = input.Email
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Website != "" {
		fields["website"] = input.Website
	}
	if input.Address != nil {
		fields["address"] = input.Address
	}
	if input.Timezone != "" {
		fields["timezone"] = input.Timezone
	}
	if input.Currency != "" {
		fields["currency"] = input.Currency
	}
	if input.DateFormat != "" {
		fields["dateFormat"] = input.DateFormat
	}

	church, err := repositories.Churches.UpdateOne(c.Request.Context(),
		bson.M{"_id": user.ChurchID}, bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Church not found")
		return
	}

	respondOK(c, church)
}

// GetProfile returns the caller's own account details.
func GetProfile(c *gin.Context) {
	user := currentUser(c)

	fresh, err := repositories.Users.FindOne(c.Request.Context(), bson.M{"_id": user.ID})
	if err != nil {
		respondRepoErr(c, err, "User not found")
		return
	}

	respondOK(c, fresh.Public())
}

// UpdateProfile updates the caller's name, email and phone.
func UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var input models.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := repositories.Users.UpdateOne(c.Request.Context(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"firstName": input.FirstName,
			"lastName":  input.LastName,
			"email":     strings.ToLower(strings.TrimSpace(input.Email)),
			"phone":     input.Phone,
		}})
	if err != nil {
		respondRepoErr(c, err, "User not found")
		return
	}

	respondOK(c, updated.Public())
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(c *gin.Context) {
	user := currentUser(c)

	var input models.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fresh, err := repositories.Users.FindOne(c.Request.Context(), bson.M{"_id": user.ID})
	if err != nil {
		respondRepoErr(c, err, "User not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(fresh.Password), []byte(input.CurrentPassword)) != nil {
		respondError(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := repositories.Users.UpdateOne(c.Request.Context(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": string(hashed)}}); err != nil {
		respondRepoErr(c, err, "User not found")
		return
	}

	respondMessage(c, "Password changed successfully")
}
