package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
	"github.com/ChurchLoop/services"
)

// GetDonations lists donations, newest first, with optional donor and date
// range filters.
func GetDonations(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	if donorHex := c.Query("donorId"); donorHex != "" {
		donorID, err := primitive.ObjectIDFromHex(donorHex)
		if err == nil {
			query["donorId"] = donorID
		}
	}
	if rng := dateRangeQuery(c); len(rng) > 0 {
		query["date"] = rng
	}

	donations, total, err := repositories.Donations.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "date", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(donations, total, page, limit))
}

// GetDonationStats reports the lifetime total, current calendar month total
// and a per-type breakdown over the requested (default: current year) range.
// The three sums run as parallel round trips.
func GetDonationStats(c *gin.Context) {
	user := currentUser(c)
	now := time.Now()

	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	to := now
	if s := c.Query("startDate"); s != "" {
		if parsed, err := parseDate(s); err == nil {
			from = parsed
		}
	}
	if s := c.Query("endDate"); s != "" {
		if parsed, err := parseDate(s); err == nil {
			to = parsed
		}
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		total, monthly float64
		byType         map[string]float64
	)

	g, gctx := errgroup.WithContext(c.Request.Context())

	g.Go(func() (err error) {
		total, err = repositories.Reports.DonationTotal(gctx, user.ChurchID, nil, nil)
		return err
	})
	g.Go(func() (err error) {
		monthly, err = repositories.Reports.DonationTotal(gctx, user.ChurchID, &startOfMonth, nil)
		return err
	})
	g.Go(func() (err error) {
		byType, err = repositories.Reports.DonationTotalsByType(gctx, user.ChurchID, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.DonationStats{Total: total, Monthly: monthly, ByType: byType})
}

func GetDonation(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Donation not found")
		return
	}

	donation, err := repositories.Donations.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Donation not found")
		return
	}

	respondOK(c, donation)
}

func CreateDonation(c *gin.Context) {
	user := currentUser(c)

	var donation models.Donation
	if err := c.ShouldBindJSON(&donation); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	donation.ChurchID = user.ChurchID
	donation.ApplyDefaults(time.Now())

	if err := repositories.Donations.Insert(c.Request.Context(), &donation); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, donation)
}

func UpdateDonation(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Donation not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if amount, ok := fields["amount"].(float64); ok && amount < 0 {
		respondError(c, http.StatusBadRequest, "Donation amount cannot be negative")
		return
	}

	donation, err := repositories.Donations.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Donation not found")
		return
	}

	respondOK(c, donation)
}

func DeleteDonation(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Donation not found")
		return
	}

	if err := repositories.Donations.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Donation not found")
		return
	}

	respondMessage(c, "Donation deleted successfully")
}

// SendDonationReceipt emails the donor a receipt and marks the donation.
func SendDonationReceipt(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Donation not found")
		return
	}

	donation, err := repositories.Donations.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id))
	if err != nil {
		respondRepoErr(c, err, "Donation not found")
		return
	}

	donor, err := repositories.Members.FindOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, donation.DonorID))
	if err != nil {
		respondRepoErr(c, err, "Donor not found")
		return
	}
	if donor.Email == "" {
		respondError(c, http.StatusBadRequest, "Donor has no email address")
		return
	}

	donorName := donor.FirstName + " " + donor.LastName
	if err := services.GetEmailService().SendDonationReceipt(donor.Email, donorName,
		donation.Amount, donation.Currency, donation.Type, donation.Date); err != nil {
		log.Printf("donation receipt for %s failed: %v", donation.ID.Hex(), err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := repositories.Donations.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": bson.M{"receiptSent": true}})
	if err != nil {
		respondRepoErr(c, err, "Donation not found")
		return
	}

	respondOK(c, updated)
}

// dateRangeQuery builds an optional {$gte, $lte} range from startDate/endDate
// query parameters.
func dateRangeQuery(c *gin.Context) bson.M {
	rng := bson.M{}
	if s := c.Query("startDate"); s != "" {
		if parsed, err := parseDate(s); err == nil {
			rng["$gte"] = parsed
		}
	}
	if s := c.Query("endDate"); s != "" {
		if parsed, err := parseDate(s); err == nil {
			rng["$lte"] = parsed
		}
	}
	return rng
}

// parsedYear reads ?year= with the current year as default.
func parsedYear(c *gin.Context) int {
	if v := c.Query("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			return year
		}
	}
	return time.Now().Year()
}
