package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
	"github.com/ChurchLoop/services"
)

// GetMessages lists messages newest first. ?type=sent shows the caller's
// outbox, ?type=announcements shows announcements only, anything else shows
// the inbox (direct messages plus announcements).
func GetMessages(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	switch c.Query("type") {
	case "sent":
		query["senderId"] = user.ID
	case "announcements":
		query["isAnnouncement"] = true
	default:
		query["$or"] = []bson.M{
			{"recipientIds": user.ID},
			{"isAnnouncement": true},
		}
	}

	messages, total, err := repositories.Messages.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]models.MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, models.MessageView{Message: msg, IsRead: msg.IsReadBy(user.ID)})
	}

	respondOK(c, models.NewPage(views, total, page, limit))
}

// GetMessage returns one message and marks it read for the caller.
func GetMessage(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Message not found")
		return
	}

	message, err := repositories.Messages.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id),
		bson.M{"$addToSet": bson.M{"readBy": user.ID}})
	if err != nil {
		respondRepoErr(c, err, "Message not found")
		return
	}

	respondOK(c, models.MessageView{Message: *message, IsRead: true})
}

// SendMessage stores a new message from the caller. Announcements carry no
// recipient list; email-type messages also fan out through the email service.
func SendMessage(c *gin.Context) {
	user := currentUser(c)

	var input models.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	message := models.Message{
		ChurchID:       user.ChurchID,
		SenderID:       user.ID,
		RecipientIDs:   input.RecipientIDs,
		Subject:        input.Subject,
		Body:           input.Body,
		Type:           input.Type,
		Priority:       input.Priority,
		IsAnnouncement: input.IsAnnouncement,
		ExpiresAt:      input.ExpiresAt,
		ReadBy:         []primitive.ObjectID{user.ID},
	}
	if message.IsAnnouncement {
		message.RecipientIDs = []primitive.ObjectID{}
	}
	message.ApplyDefaults()

	if err := repositories.Messages.Insert(c.Request.Context(), &message); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if message.Type == "email" {
		go deliverMessageEmail(message)
	}

	respondCreated(c, message)
}

// deliverMessageEmail resolves recipient addresses and sends the message as
// email. Failures only log; the message is already stored.
func deliverMessageEmail(message models.Message) {
	ctx := context.Background()

	var emails []string
	if message.IsAnnouncement {
		users, _, err := repositories.Users.List(ctx, repositories.Tenant(message.ChurchID), repositories.ListOptions{})
		if err != nil {
			log.Printf("announcement email recipients lookup failed: %v", err)
			return
		}
		for _, u := range users {
			if u.IsActive && u.Email != "" {
				emails = append(emails, u.Email)
			}
		}
	} else {
		for _, recipientID := range message.RecipientIDs {
			u, err := repositories.Users.FindOne(ctx, bson.M{"_id": recipientID, "churchId": message.ChurchID})
			if err != nil || u.Email == "" {
				continue
			}
			emails = append(emails, u.Email)
		}
	}

	if err := services.GetEmailService().SendAnnouncement(emails, message.Subject, message.Body); err != nil {
		log.Printf("email delivery for message %s failed: %v", message.ID.Hex(), err)
	}
}

// MarkMessageRead records that the caller has read the message. Re-reading is
// harmless.
func MarkMessageRead(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Message not found")
		return
	}

	_, err = repositories.Messages.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id),
		bson.M{"$addToSet": bson.M{"readBy": user.ID}})
	if err != nil {
		respondRepoErr(c, err, "Message not found")
		return
	}

	respondMessage(c, "Message marked as read")
}

// DeleteMessage removes a message. Only the sender may delete it; anyone else
// gets the same response as for a missing message.
func DeleteMessage(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Message not found or you do not have permission to delete it")
		return
	}

	filter := repositories.TenantByID(user.ChurchID, id)
	filter["senderId"] = user.ID

	if err := repositories.Messages.DeleteOne(c.Request.Context(), filter); err != nil {
		respondRepoErr(c, err, "Message not found or you do not have permission to delete it")
		return
	}

	respondMessage(c, "Message deleted successfully")
}

// GetMessageRecipients lists the church's users as addressable recipients.
func GetMessageRecipients(c *gin.Context) {
	user := currentUser(c)

	users, _, err := repositories.Users.List(c.Request.Context(), repositories.Tenant(user.ChurchID), repositories.ListOptions{
		Sort: bson.D{{Key: "firstName", Value: 1}},
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	recipients := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, u.Public())
	}

	respondOK(c, recipients)
}
