package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusCount is one bucket of a per-status breakdown.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// MonthlyTotal is one bucket of a per-month donation sum (1 = January).
type MonthlyTotal struct {
	Month int32   `bson:"_id" json:"month"`
	Total float64 `bson:"total" json:"total"`
}

// GivingSummaryEntry is one donor's yearly giving line.
type GivingSummaryEntry struct {
	DonorID       primitive.ObjectID `bson:"_id" json:"donorId"`
	DonorName     string             `bson:"donorName" json:"donorName"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	DonationCount int64              `bson:"donationCount" json:"donationCount"`
}

// ReportsRepo holds the cross-collection aggregations the dashboard and
// reporting endpoints need. Everything is tenant scoped.
type ReportsRepo interface {
	// DonationTotal sums amounts in the optional [from, to] range;
	// nil bounds leave that side open.
	DonationTotal(ctx context.Context, churchID primitive.ObjectID, from, to *time.Time) (float64, error)
	DonationTotalsByType(ctx context.Context, churchID primitive.ObjectID, from, to time.Time) (map[string]float64, error)
	DonationMonthlyTotals(ctx context.Context, churchID primitive.ObjectID, since time.Time) ([]MonthlyTotal, error)
	MemberStatusCounts(ctx context.Context, churchID primitive.ObjectID) ([]StatusCount, error)
	AttendanceStatusCounts(ctx context.Context, churchID primitive.ObjectID, since time.Time) ([]StatusCount, error)
	GivingSummary(ctx context.Context, churchID primitive.ObjectID, year int) ([]GivingSummaryEntry, error)
}
