// internal/models/TripRecord.go
package models

import (
	"time"
)

// Payment states of a trip.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// DeliveryStatusDefault is the paperwork status every new trip starts with.
const DeliveryStatusDefault = "not finished"

// TripRecord is one logistics trip entry. Column names follow the legacy "data" table.
type TripRecord struct {
	ID                      uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date                    Date      `json:"tanggal" gorm:"column:tanggal;not null;index"`
	PlateNumber             string    `json:"nopol" gorm:"column:nopol;not null;index"`
	Driver                  *string   `json:"driver" gorm:"column:driver"`
	Origin                  string    `json:"origin" gorm:"column:origin;not null"`
	Destination             string    `json:"destinasi" gorm:"column:destinasi;not null"`
	Cost                    int64     `json:"uj" gorm:"column:uj;not null"`
	Price                   int64     `json:"harga" gorm:"column:harga;not null"`
	Status                  string    `json:"status" gorm:"column:status;not null"`
	DeliveryStatus          string    `json:"status_sj" gorm:"column:status_sj;not null"`
	DeliveryStatusUpdatedAt time.Time `json:"tanggal_update_sj" gorm:"column:tanggal_update_sj"`
	PhotoPath               *string   `json:"foto" gorm:"column:foto"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (TripRecord) TableName() string {
	return "data"
}

// Margin is price minus cost.
func (r TripRecord) Margin() int64 {
	return r.Price - r.Cost
}

// IsValidStatus reports whether s is one of the three payment states.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}
