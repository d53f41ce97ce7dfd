package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is a financial contribution tied to a member.
type Donation struct {
	Meta          `bson:",inline"`
	DonorID       primitive.ObjectID `bson:"donorId" json:"donorId" binding:"required"`
	ChurchID      primitive.ObjectID `bson:"churchId" json:"churchId"`
	Amount        float64            `bson:"amount" json:"amount" binding:"gte=0"`
	Currency      string             `bson:"currency" json:"currency"`
	Date          time.Time          `bson:"date" json:"date"`
	Type          string             `bson:"type" json:"type" binding:"required,oneof=tithe offering building mission other"`
	Method        string             `bson:"method" json:"method" binding:"required,oneof=cash check card online bank_transfer eft"`
	Fund          string             `bson:"fund,omitempty" json:"fund,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ReceiptSent   bool               `bson:"receiptSent" json:"receiptSent"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

func (d *Donation) ApplyDefaults(now time.Time) {
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if d.Date.IsZero() {
		d.Date = now
	}
}

// DonationStats is the payload of GET /api/donations/stats.
type DonationStats struct {
	Total   float64            `json:"total"`
	Monthly float64            `json:"monthly"`
	ByType  map[string]float64 `json:"byType"`
}
