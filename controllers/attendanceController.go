package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// GetAttendance lists attendance records, newest date first, with optional
// event, member and exact date filters.
func GetAttendance(c *gin.Context) {
	user := currentUser(c)
	page, limit, skip := pagination(c)

	query := repositories.Tenant(user.ChurchID)
	if eventHex := c.Query("eventId"); eventHex != "" {
		if eventID, err := primitive.ObjectIDFromHex(eventHex); err == nil {
			query["eventId"] = eventID
		}
	}
	if memberHex := c.Query("memberId"); memberHex != "" {
		if memberID, err := primitive.ObjectIDFromHex(memberHex); err == nil {
			query["memberId"] = memberID
		}
	}
	if s := c.Query("date"); s != "" {
		if date, err := parseDate(s); err == nil {
			query["date"] = date
		}
	}

	records, total, err := repositories.Attendance.List(c.Request.Context(), query, repositories.ListOptions{
		Sort:  bson.D{{Key: "date", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, models.NewPage(records, total, page, limit))
}

// GetAttendanceStats counts records per status over the requested range
// (default: current year to date), optionally for a single event.
func GetAttendanceStats(c *gin.Context) {
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

	query := repositories.Tenant(user.ChurchID)
	query["date"] = bson.M{"$gte": from, "$lte": to}
	if eventHex := c.Query("eventId"); eventHex != "" {
		if eventID, err := primitive.ObjectIDFromHex(eventHex); err == nil {
			query["eventId"] = eventID
		}
	}

	ctx := c.Request.Context()
	stats := models.AttendanceStats{}
	var err error

	if stats.Total, err = repositories.Attendance.Count(ctx, query); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	for status, dest := range map[string]*int64{
		"present": &stats.Present,
		"absent":  &stats.Absent,
		"late":    &stats.Late,
	} {
		statusQuery := bson.M{"status": status}
		for k, v := range query {
			statusQuery[k] = v
		}
		if *dest, err = repositories.Attendance.Count(ctx, statusQuery); err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respondOK(c, stats)
}

func CreateAttendance(c *gin.Context) {
	user := currentUser(c)

	var record models.Attendance
	if err := c.ShouldBindJSON(&record); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	record.ChurchID = user.ChurchID
	record.ApplyDefaults()

	if err := repositories.Attendance.Insert(c.Request.Context(), &record); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, record)
}

// BulkCreateAttendance inserts a batch of records in one call, typically a
// whole service's check-in sheet. Duplicate rows are stored as-is.
func BulkCreateAttendance(c *gin.Context) {
	user := currentUser(c)

	var input models.BulkAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	records := make([]*models.Attendance, 0, len(input.Records))
	for i := range input.Records {
		record := input.Records[i]
		record.ChurchID = user.ChurchID
		record.ApplyDefaults()
		records = append(records, &record)
	}

	if err := repositories.Attendance.InsertMany(c.Request.Context(), records); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	saved := make([]models.Attendance, 0, len(records))
	for _, record := range records {
		saved = append(saved, *record)
	}
	respondCreated(c, saved)
}

func UpdateAttendance(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Attendance record not found")
		return
	}

	fields, err := bindUpdate(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := repositories.Attendance.UpdateOne(c.Request.Context(),
		repositories.TenantByID(user.ChurchID, id), bson.M{"$set": fields})
	if err != nil {
		respondRepoErr(c, err, "Attendance record not found")
		return
	}

	respondOK(c, record)
}

func DeleteAttendance(c *gin.Context) {
	user := currentUser(c)
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "Attendance record not found")
		return
	}

	if err := repositories.Attendance.DeleteOne(c.Request.Context(), repositories.TenantByID(user.ChurchID, id)); err != nil {
		respondRepoErr(c, err, "Attendance record not found")
		return
	}

	respondMessage(c, "Attendance record deleted successfully")
}
