package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
)

// memoryReports computes the dashboard and report aggregations by iterating
// the in-memory stores, keeping the test suite database-free.
type memoryReports struct {
	donations  *memoryStore[models.Donation]
	members    *memoryStore[models.Member]
	attendance *memoryStore[models.Attendance]
}

func (r *memoryReports) DonationTotal(ctx context.Context, churchID primitive.ObjectID, from, to *time.Time) (float64, error) {
	filter := Tenant(churchID)
	if rng := dateRange(from, to); len(rng) > 0 {
		filter["date"] = rng
	}
	var total float64
	for _, d := range r.donations.all(filter) {
		total += d.Amount
	}
	return total, nil
}

func (r *memoryReports) DonationTotalsByType(ctx context.Context, churchID primitive.ObjectID, from, to time.Time) (map[string]float64, error) {
	filter := Tenant(churchID)
	filter["date"] = bson.M{"$gte": from, "$lte": to}
	byType := map[string]float64{}
	for _, d := range r.donations.all(filter) {
		byType[d.Type] += d.Amount
	}
	return byType, nil
}

func (r *memoryReports) DonationMonthlyTotals(ctx context.Context, churchID primitive.ObjectID, since time.Time) ([]MonthlyTotal, error) {
	filter := Tenant(churchID)
	filter["date"] = bson.M{"$gte": since}
	byMonth := map[int32]float64{}
	for _, d := range r.donations.all(filter) {
		byMonth[int32(d.Date.Month())] += d.Amount
	}
	out := make([]MonthlyTotal, 0, len(byMonth))
	for month, total := range byMonth {
		out = append(out, MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *memoryReports) MemberStatusCounts(ctx context.Context, churchID primitive.ObjectID) ([]StatusCount, error) {
	counts := map[string]int64{}
	for _, m := range r.members.all(Tenant(churchID)) {
		counts[m.MembershipStatus]++
	}
	return statusCountSlice(counts), nil
}

func (r *memoryReports) AttendanceStatusCounts(ctx context.Context, churchID primitive.ObjectID, since time.Time) ([]StatusCount, error) {
	filter := Tenant(churchID)
	filter["date"] = bson.M{"$gte": since}
	counts := map[string]int64{}
	for _, a := range r.attendance.all(filter) {
		counts[a.Status]++
	}
	return statusCountSlice(counts), nil
}

func (r *memoryReports) GivingSummary(ctx context.Context, churchID primitive.ObjectID, year int) ([]GivingSummaryEntry, error) {
	filter := Tenant(churchID)
	filter["date"] = bson.M{
		"$gte": time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		"$lte": time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
	byDonor := map[primitive.ObjectID]*GivingSummaryEntry{}
	for _, d := range r.donations.all(filter) {
		entry, ok := byDonor[d.DonorID]
		if !ok {
			entry = &GivingSummaryEntry{DonorID: d.DonorID, DonorName: "Anonymous"}
			byDonor[d.DonorID] = entry
		}
		entry.TotalAmount += d.Amount
		entry.DonationCount++
	}
	for _, m := range r.members.all(Tenant(churchID)) {
		if entry, ok := byDonor[m.ID]; ok {
			entry.DonorName = strings.TrimSpace(m.FirstName + " " + m.LastName)
		}
	}
	out := make([]GivingSummaryEntry, 0, len(byDonor))
	for _, entry := range byDonor {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalAmount > out[j].TotalAmount })
	return out, nil
}

func statusCountSlice(counts map[string]int64) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
