package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/ChurchLoop/repositories"
)

// GetReportsDashboard returns the reporting page's breakdowns: members per
// status, donation totals per month this year, upcoming event and active
// group counts, and this month's attendance per status.
func GetReportsDashboard(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	var (
		members        []repositories.StatusCount
		donations      []repositories.MonthlyTotal
		attendance     []repositories.StatusCount
		upcomingEvents int64
		activeGroups   int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		members, err = repositories.Reports.MemberStatusCounts(gctx, user.ChurchID)
		return err
	})
	g.Go(func() (err error) {
		donations, err = repositories.Reports.DonationMonthlyTotals(gctx, user.ChurchID, startOfYear)
		return err
	})
	g.Go(func() (err error) {
		attendance, err = repositories.Reports.AttendanceStatusCounts(gctx, user.ChurchID, startOfMonth)
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

	if err := g.Wait(); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, gin.H{
		"members":        members,
		"donations":      donations,
		"upcomingEvents": upcomingEvents,
		"activeGroups":   activeGroups,
		"attendance":     attendance,
	})
}

func sendCSV(c *gin.Context, filename string, lines []string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.String(http.StatusOK, strings.Join(lines, "\n"))
}

// ExportMembersCSV streams the member roster as a CSV attachment.
func ExportMembersCSV(c *gin.Context) {
	user := currentUser(c)

	members, _, err := repositories.Members.List(c.Request.Context(),
		repositories.Tenant(user.ChurchID), repositories.ListOptions{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	lines := []string{"First Name,Last Name,Email,Phone,Status,Join Date,Created At"}
	for _, m := range members {
		joinDate := ""
		if m.JoinDate != nil {
			joinDate = m.JoinDate.Format("2006-01-02")
		}
		lines = append(lines, fmt.Sprintf(`"%s","%s","%s","%s","%s","%s","%s"`,
			m.FirstName, m.LastName, m.Email, m.Phone, m.MembershipStatus,
			joinDate, m.CreatedAt.Format(time.RFC3339)))
	}

	sendCSV(c, "members.csv", lines)
}

// ExportDonationsCSV streams donations (optionally date-filtered) as CSV,
// with donor names resolved and a quote-escaped notes column.
func ExportDonationsCSV(c *gin.Context) {
	user := currentUser(c)

	query := repositories.Tenant(user.ChurchID)
	if rng := dateRangeQuery(c); len(rng) > 0 {
		query["date"] = rng
	}

	donations, _, err := repositories.Donations.List(c.Request.Context(), query, repositories.ListOptions{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	names := donorNames(c, user.ChurchID)

	lines := []string{"Date,Donor,Amount,Currency,Type,Method,Fund,Notes"}
	for _, d := range donations {
		donorName, ok := names[d.DonorID]
		if !ok {
			donorName = "Anonymous"
		}
		lines = append(lines, fmt.Sprintf(`"%s","%s",%s,"%s","%s","%s","%s","%s"`,
			d.Date.UTC().Format("2006-01-02"), donorName,
			strconv.FormatFloat(d.Amount, 'f', -1, 64),
			d.Currency, d.Type, d.Method, d.Fund,
			strings.ReplaceAll(d.Notes, `"`, `""`)))
	}

	sendCSV(c, "donations.csv", lines)
}

// ExportAttendanceCSV streams attendance records as CSV with member and event
// names resolved; unresolvable references export as "Unknown".
func ExportAttendanceCSV(c *gin.Context) {
	user := currentUser(c)

	query := repositories.Tenant(user.ChurchID)
	if rng := dateRangeQuery(c); len(rng) > 0 {
		query["date"] = rng
	}
	if eventHex := c.Query("eventId"); eventHex != "" {
		if eventID, err := primitive.ObjectIDFromHex(eventHex); err == nil {
			query["eventId"] = eventID
		}
	}

	records, _, err := repositories.Attendance.List(c.Request.Context(), query, repositories.ListOptions{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	memberNames := donorNames(c, user.ChurchID)
	eventTitles := map[primitive.ObjectID]string{}
	if events, _, err := repositories.Events.List(c.Request.Context(), repositories.Tenant(user.ChurchID), repositories.ListOptions{}); err == nil {
		for _, e := range events {
			eventTitles[e.ID] = e.Title
		}
	}

	lines := []string{"Date,Member,Event,Status,Check-in,Check-out"}
	for _, a := range records {
		memberName, ok := memberNames[a.MemberID]
		if !ok {
			memberName = "Unknown"
		}
		eventName, ok := eventTitles[a.EventID]
		if !ok {
			eventName = "Unknown"
		}
		checkedIn := ""
		if a.CheckedInAt != nil {
			checkedIn = a.CheckedInAt.Format(time.RFC3339)
		}
		checkedOut := ""
		if a.CheckedOutAt != nil {
			checkedOut = a.CheckedOutAt.Format(time.RFC3339)
		}
		lines = append(lines, fmt.Sprintf(`"%s","%s","%s","%s","%s","%s"`,
			a.Date.UTC().Format("2006-01-02"), memberName, eventName, a.Status, checkedIn, checkedOut))
	}

	sendCSV(c, "attendance.csv", lines)
}

// donorNames maps every member id in the church to a display name.
func donorNames(c *gin.Context, churchID primitive.ObjectID) map[primitive.ObjectID]string {
	names := map[primitive.ObjectID]string{}
	members, _, err := repositories.Members.List(c.Request.Context(), repositories.Tenant(churchID), repositories.ListOptions{})
	if err != nil {
		return names
	}
	for _, m := range members {
		names[m.ID] = m.FirstName + " " + m.LastName
	}
	return names
}

// GetGivingSummary returns per-donor yearly totals with a grand total.
func GetGivingSummary(c *gin.Context) {
	user := currentUser(c)
	year := parsedYear(c)

	summary, err := repositories.Reports.GivingSummary(c.Request.Context(), user.ChurchID, year)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var grandTotal float64
	for _, entry := range summary {
		grandTotal += entry.TotalAmount
	}

	respondOK(c, gin.H{
		"year":       year,
		"summary":    summary,
		"grandTotal": grandTotal,
	})
}
