package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/ChurchLoop/repositories"
)

// Activity is one line in the dashboard's recent-activity feed.
type Activity struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// GetDashboardStats assembles the landing-page numbers. The independent
// counts and sums run as parallel round trips.
func GetDashboardStats(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Second)

	var (
		totalMembers, activeMembers, upcomingEvents, activeGroups int64
		totalDonations, monthlyDonations                          float64
		recentActivity                                            []Activity
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		totalMembers, err = repositories.Members.Count(gctx, repositories.Tenant(user.ChurchID))
		return err
	})
	g.Go(func() (err error) {
		query := repositories.Tenant(user.ChurchID)
		query["membershipStatus"] = "active"
		activeMembers, err = repositories.Members.Count(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		totalDonations, err = repositories.Reports.DonationTotal(gctx, user.ChurchID, nil, nil)
		return err
	})
	g.Go(func() (err error) {
		monthlyDonations, err = repositories.Reports.DonationTotal(gctx, user.ChurchID, &startOfMonth, &endOfMonth)
		return err
	})
	g.Go(func() (err error) {
		query := repositories.Tenant(user.ChurchID)
		query["startDate"] = bson.M{"$gte": now}
		upcomingEvents, err = repositories.Events.Count(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		query := repositories.Tenant(user.ChurchID)
		query["isActive"] = true
		activeGroups, err = repositories.Groups.Count(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		recentActivity, err = recentActivityFeed(gctx, user.ChurchID)
		return err
	})

	if err := g.Wait(); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, gin.H{
		"totalMembers":     totalMembers,
		"activeMembers":    activeMembers,
		"totalDonations":   totalDonations,
		"monthlyDonations": monthlyDonations,
		"upcomingEvents":   upcomingEvents,
		"activeGroups":     activeGroups,
		"recentActivity":   recentActivity,
	})
}

// recentActivityFeed merges the five newest members and five newest donations
// into the five most recent events overall.
func recentActivityFeed(ctx context.Context, churchID primitive.ObjectID) ([]Activity, error) {
	recentOpts := repositories.ListOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Limit: 5,
	}

	members, _, err := repositories.Members.List(ctx, repositories.Tenant(churchID), recentOpts)
	if err != nil {
		return nil, err
	}
	donations, _, err := repositories.Donations.List(ctx, repositories.Tenant(churchID), recentOpts)
	if err != nil {
		return nil, err
	}

	activity := make([]Activity, 0, len(members)+len(donations))
	for _, m := range members {
		activity = append(activity, Activity{
			Type:    "member",
			Message: fmt.Sprintf("%s %s joined", m.FirstName, m.LastName),
			Time:    m.CreatedAt,
		})
	}
	for _, d := range donations {
		donorName := "Anonymous"
		if donor, err := repositories.Members.FindOne(ctx, repositories.TenantByID(churchID, d.DonorID)); err == nil {
			donorName = donor.FirstName
		}
		activity = append(activity, Activity{
			Type:    "donation",
			Message: fmt.Sprintf("Donation of R%s from %s", formatAmount(d.Amount), donorName),
			Time:    d.CreatedAt,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool { return activity[i].Time.After(activity[j].Time) })
	if len(activity) > 5 {
		activity = activity[:5]
	}
	return activity, nil
}

// formatAmount renders an amount with thousands separators, dropping a
// trailing ".00".
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimSuffix(s, ".00")
	parts := strings.SplitN(s, ".", 2)

	intPart := parts[0]
	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	out := strings.Join(grouped, ",")
	if len(parts) == 2 {
		out += "." + parts[1]
	}
	return out
}
