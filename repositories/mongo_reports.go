package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoReports struct {
	db *mongo.Database
}

// NewMongoReports builds the aggregation-pipeline backed ReportsRepo.
func NewMongoReports(db *mongo.Database) ReportsRepo {
	return &mongoReports{db: db}
}

func dateRange(from, to *time.Time) bson.M {
	rng := bson.M{}
	if from != nil {
		rng["$gte"] = *from
	}
	if to != nil {
		rng["$lte"] = *to
	}
	return rng
}

func (r *mongoReports) DonationTotal(ctx context.Context, churchID primitive.ObjectID, from, to *time.Time) (float64, error) {
	match := bson.M{"churchId": churchID}
	if rng := dateRange(from, to); len(rng) > 0 {
		match["date"] = rng
	}
	cur, err := r.db.Collection("donations").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoReports) DonationTotalsByType(ctx context.Context, churchID primitive.ObjectID, from, to time.Time) (map[string]float64, error) {
	cur, err := r.db.Collection("donations").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"churchId": churchID,
			"date":     bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$type", "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Type  string  `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	byType := map[string]float64{}
	for _, row := range rows {
		byType[row.Type] = row.Total
	}
	return byType, nil
}

func (r *mongoReports) DonationMonthlyTotals(ctx context.Context, churchID primitive.ObjectID, since time.Time) ([]MonthlyTotal, error) {
	cur, err := r.db.Collection("donations").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"churchId": churchID, "date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": bson.M{"$month": "$date"}, "total": bson.M{"$sum": "$amount"}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []MonthlyTotal
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mongoReports) MemberStatusCounts(ctx context.Context, churchID primitive.ObjectID) ([]StatusCount, error) {
	return r.statusCounts(ctx, "members", bson.M{"churchId": churchID}, "$membershipStatus")
}

func (r *mongoReports) AttendanceStatusCounts(ctx context.Context, churchID primitive.ObjectID, since time.Time) ([]StatusCount, error) {
	return r.statusCounts(ctx, "attendance", bson.M{"churchId": churchID, "date": bson.M{"$gte": since}}, "$status")
}

func (r *mongoReports) statusCounts(ctx context.Context, coll string, match bson.M, field string) ([]StatusCount, error) {
	cur, err := r.db.Collection(coll).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []StatusCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mongoReports) GivingSummary(ctx context.Context, churchID primitive.ObjectID, year int) ([]GivingSummaryEntry, error) {
	startOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	endOfYear := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	cur, err := r.db.Collection("donations").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"churchId": churchID,
			"date":     bson.M{"$gte": startOfYear, "$lte": endOfYear},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$donorId",
			"totalAmount":   bson.M{"$sum": "$amount"},
			"donationCount": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "members",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "donor",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$donor", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"totalAmount":   1,
			"donationCount": 1,
			"donorName": bson.M{"$concat": bson.A{
				bson.M{"$ifNull": bson.A{"$donor.firstName", "Anonymous"}},
				" ",
				bson.M{"$ifNull": bson.A{"$donor.lastName", ""}},
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"totalAmount": -1}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []GivingSummaryEntry
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].DonorName = strings.TrimSpace(rows[i].DonorName)
	}
	return rows, nil
}
