package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

func TestExportMembersCSV(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	seedMember(t, user.ChurchID, "Thabo", "Nkosi")
	seedMember(t, user.ChurchID, "Lerato", "Dlamini")

	// another church's roster must not appear in the export
	_, other := seedChurchUser(t, "Other", "other@church.org")
	seedMember(t, other.ChurchID, "Out", "Sider")

	c, w := testContext(t, "GET", "/api/reports/export/members", nil)
	asUser(c, user)
	ExportMembersCSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=members.csv", w.Header().Get("Content-Disposition"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "First Name,Last Name,Email,Phone,Status,Join Date,Created At", lines[0])
	assert.Contains(t, w.Body.String(), `"Thabo","Nkosi","Thabo@example.com"`)
	assert.Contains(t, w.Body.String(), `"Lerato","Dlamini"`)
	assert.NotContains(t, w.Body.String(), "Sider")
}

func TestExportDonationsCSV(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	donor := seedMember(t, user.ChurchID, "Thabo", "Nkosi")

	date := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	donation := models.Donation{
		ChurchID: user.ChurchID,
		DonorID:  donor.ID,
		Amount:   1234.5,
		Currency: "ZAR",
		Type:     "tithe",
		Method:   "eft",
		Fund:     "building",
		Date:     date,
		Notes:    `donor said "thanks"`,
	}
	require.NoError(t, repositories.Donations.Insert(context.Background(), &donation))

	anonymous := models.Donation{
		ChurchID: user.ChurchID,
		DonorID:  primitive.NewObjectID(),
		Amount:   20,
		Currency: "ZAR",
		Type:     "offering",
		Method:   "cash",
		Date:     date,
	}
	require.NoError(t, repositories.Donations.Insert(context.Background(), &anonymous))

	c, w := testContext(t, "GET", "/api/reports/export/donations", nil)
	asUser(c, user)
	ExportDonationsCSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Donor,Amount,Currency,Type,Method,Fund,Notes", lines[0])
	// amount is unquoted, quotes in notes are doubled
	assert.Contains(t, body, `"2026-03-15","Thabo Nkosi",1234.5,"ZAR","tithe","eft","building","donor said ""thanks"""`)
	assert.Contains(t, body, `"2026-03-15","Anonymous",20,"ZAR","offering","cash","",""`)
}

func TestExportDonationsCSVDateFilter(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	donor := seedMember(t, user.ChurchID, "Thabo", "Nkosi")

	seedDonation(t, user.ChurchID, donor.ID, 100, "tithe", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	seedDonation(t, user.ChurchID, donor.ID, 200, "tithe", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	c, w := testContext(t, "GET", "/api/reports/export/donations?startDate=2026-05-01", nil)
	asUser(c, user)
	ExportDonationsCSV(c)

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "200")
}

func TestExportAttendanceCSV(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	member := seedMember(t, user.ChurchID, "Thabo", "Nkosi")
	ctx := context.Background()

	event := models.Event{
		ChurchID: user.ChurchID, Title: "Sunday Service", Type: "service",
		StartDate: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), OrganizerID: user.ID,
	}
	require.NoError(t, repositories.Events.Insert(ctx, &event))

	checkedIn := time.Date(2026, 8, 30, 8, 55, 0, 0, time.UTC)
	known := models.Attendance{
		ChurchID: user.ChurchID, MemberID: member.ID, EventID: event.ID,
		Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Status: "present",
		CheckedInAt: &checkedIn,
	}
	orphan := models.Attendance{
		ChurchID: user.ChurchID, MemberID: primitive.NewObjectID(), EventID: primitive.NewObjectID(),
		Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Status: "absent",
	}
	require.NoError(t, repositories.Attendance.Insert(ctx, &known))
	require.NoError(t, repositories.Attendance.Insert(ctx, &orphan))

	c, w := testContext(t, "GET", "/api/reports/export/attendance", nil)
	asUser(c, user)
	ExportAttendanceCSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Member,Event,Status,Check-in,Check-out", lines[0])
	assert.Contains(t, body, fmt.Sprintf(`"2026-08-30","Thabo Nkosi","Sunday Service","present","%s",""`,
		checkedIn.Format(time.RFC3339)))
	assert.Contains(t, body, `"2026-08-30","Unknown","Unknown","absent","",""`)
}

func TestGetGivingSummary(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	thabo := seedMember(t, user.ChurchID, "Thabo", "Nkosi")
	lerato := seedMember(t, user.ChurchID, "Lerato", "Dlamini")

	seedDonation(t, user.ChurchID, thabo.ID, 100, "tithe", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	seedDonation(t, user.ChurchID, thabo.ID, 50, "offering", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	seedDonation(t, user.ChurchID, lerato.ID, 500, "tithe", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	// outside the requested year
	seedDonation(t, user.ChurchID, thabo.ID, 9999, "tithe", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))

	c, w := testContext(t, "GET", "/api/reports/giving-summary?year=2025", nil)
	asUser(c, user)
	GetGivingSummary(c)

	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Year       int                               `json:"year"`
		Summary    []repositories.GivingSummaryEntry `json:"summary"`
		GrandTotal float64                           `json:"grandTotal"`
	}
	decodeData(t, w, &result)

	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, float64(650), result.GrandTotal)
	require.Len(t, result.Summary, 2)

	// sorted by total giving, highest first
	assert.Equal(t, "Lerato Dlamini", result.Summary[0].DonorName)
	assert.Equal(t, float64(500), result.Summary[0].TotalAmount)
	assert.Equal(t, int64(1), result.Summary[0].DonationCount)

	assert.Equal(t, "Thabo Nkosi", result.Summary[1].DonorName)
	assert.Equal(t, float64(150), result.Summary[1].TotalAmount)
	assert.Equal(t, int64(2), result.Summary[1].DonationCount)
}

func TestGetReportsDashboard(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	now := time.Now()

	active := seedMember(t, user.ChurchID, "Thabo", "Nkosi")
	updateMemberStatus(t, user, active, "active")
	seedMember(t, user.ChurchID, "Lerato", "Dlamini")

	seedDonation(t, user.ChurchID, active.ID, 100, "tithe", now)

	attendance := models.Attendance{
		ChurchID: user.ChurchID, MemberID: active.ID, EventID: primitive.NewObjectID(),
		Date: now, Status: "present",
	}
	require.NoError(t, repositories.Attendance.Insert(context.Background(), &attendance))

	event := models.Event{
		ChurchID: user.ChurchID, Title: "Service", Type: "service",
		StartDate: now.AddDate(0, 0, 3), OrganizerID: user.ID,
	}
	require.NoError(t, repositories.Events.Insert(context.Background(), &event))
	seedGroup(t, user.ChurchID, "Youth")

	c, w := testContext(t, "GET", "/api/reports/dashboard", nil)
	asUser(c, user)
	GetReportsDashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		Members        []repositories.StatusCount  `json:"members"`
		Donations      []repositories.MonthlyTotal `json:"donations"`
		Attendance     []repositories.StatusCount  `json:"attendance"`
		UpcomingEvents int64                       `json:"upcomingEvents"`
		ActiveGroups   int64                       `json:"activeGroups"`
	}
	decodeData(t, w, &report)

	assert.ElementsMatch(t, []repositories.StatusCount{
		{Status: "active", Count: 1},
		{Status: "visitor", Count: 1},
	}, report.Members)
	require.Len(t, report.Donations, 1)
	assert.Equal(t, int32(now.Month()), report.Donations[0].Month)
	assert.Equal(t, float64(100), report.Donations[0].Total)
	assert.Equal(t, []repositories.StatusCount{{Status: "present", Count: 1}}, report.Attendance)
	assert.Equal(t, int64(1), report.UpcomingEvents)
	assert.Equal(t, int64(1), report.ActiveGroups)
}
