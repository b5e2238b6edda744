package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_ledger/internal/models"
	"trip_ledger/internal/repository"
	"trip_ledger/internal/storage"
)

// TripController serves the /data resource and /setlunas.
type TripController struct {
	Trips  repository.TripRepository
	Photos *storage.PhotoStore
	Now    func() time.Time
}

func NewTripController(trips repository.TripRepository, photos *storage.PhotoStore, now func() time.Time) *TripController {
	if now == nil {
		now = time.Now
	}
	return &TripController{Trips: trips, Photos: photos, Now: now}
}

type createTripInput struct {
	Date        string  `json:"tanggal" form:"tanggal" binding:"required"`
	PlateNumber string  `json:"nopol" form:"nopol" binding:"required"`
	Driver      *string `json:"driver" form:"driver"`
	Origin      string  `json:"origin" form:"origin" binding:"required"`
	Destination string  `json:"destinasi" form:"destinasi" binding:"required"`
	Cost        *amount `json:"uj" form:"uj" binding:"required"`
	Price       *amount `json:"harga" form:"harga" binding:"required"`
	Status      string  `json:"status" form:"status" binding:"required,oneof=pending confirmed canceled"`
}

// Every field is optional; nil means "leave as is".
type updateTripInput struct {
	Date           *string `json:"tanggal" form:"tanggal"`
	PlateNumber    *string `json:"nopol" form:"nopol" binding:"omitempty,min=1"`
	Driver         *string `json:"driver" form:"driver"`
	Origin         *string `json:"origin" form:"origin" binding:"omitempty,min=1"`
	Destination    *string `json:"destinasi" form:"destinasi" binding:"omitempty,min=1"`
	Cost           *amount `json:"uj" form:"uj"`
	Price          *amount `json:"harga" form:"harga"`
	Status         *string `json:"status" form:"status" binding:"omitempty,oneof=pending confirmed canceled"`
	DeliveryStatus *string `json:"status_sj" form:"status_sj"`
}

// CreateTrip stores a new trip; a plate can only be recorded once per day.
func (tc *TripController) CreateTrip(c *gin.Context) {
	var input createTripInput
	if err := c.ShouldBind(&input); err != nil {
		respondValidation(c, bindErrors(err))
		return
	}
	date, err := parseInputDate(input.Date)
	if err != nil {
		respondValidation(c, fieldErrors{"tanggal": {"The tanggal is not a valid date."}})
		return
	}

	rec := models.TripRecord{
		Date:                    date,
		PlateNumber:             input.PlateNumber,
		Driver:                  input.Driver,
		Origin:                  input.Origin,
		Destination:             input.Destination,
		Cost:                    int64(*input.Cost),
		Price:                   int64(*input.Price),
		Status:                  input.Status,
		DeliveryStatus:          models.DeliveryStatusDefault,
		DeliveryStatusUpdatedAt: tc.Now(),
	}
	if err := tc.Trips.Create(c.Request.Context(), &rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status":  false,
				"message": "This plate number has already been recorded for this date.",
			})
			return
		}
		logrus.WithError(err).Error("CreateTrip: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create data"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (tc *TripController) GetTrip(c *gin.Context) {
	rec, ok := tc.loadTrip(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateTrip merges the provided fields. A new status_sj refreshes
// tanggal_update_sj; a "foto" file replaces the stored photo.
func (tc *TripController) UpdateTrip(c *gin.Context) {
	rec, ok := tc.loadTrip(c)
	if !ok {
		return
	}

	var input updateTripInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&input); err != nil {
			respondValidation(c, bindErrors(err))
			return
		}
	}
	if input.Date != nil {
		date, err := parseInputDate(*input.Date)
		if err != nil {
			respondValidation(c, fieldErrors{"tanggal": {"The tanggal is not a valid date."}})
			return
		}
		rec.Date = date
	}
	applyUpdate(rec, input)
	if input.DeliveryStatus != nil {
		rec.DeliveryStatusUpdatedAt = tc.Now()
	}

	oldPhoto := rec.PhotoPath
	newPhoto := ""
	fh, err := c.FormFile("foto")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		fh = nil
	case err != nil:
		respondValidation(c, fieldErrors{"foto": {"The foto upload could not be read."}})
		return
	}
	if fh != nil {
		path, err := tc.Photos.Save(fh)
		if err != nil {
			if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrInvalidImage) {
				respondValidation(c, fieldErrors{"foto": {err.Error()}})
				return
			}
			logrus.WithError(err).Error("UpdateTrip: storing photo failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
			return
		}
		newPhoto = path
		rec.PhotoPath = &newPhoto
	}

	if err := tc.Trips.Save(c.Request.Context(), rec); err != nil {
		logrus.WithError(err).WithField("id", rec.ID).Error("UpdateTrip: save failed")
		if newPhoto != "" {
			tc.removePhoto(newPhoto)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update data"})
		return
	}
	if newPhoto != "" && oldPhoto != nil {
		tc.removePhoto(*oldPhoto)
	}

	var photoURL interface{}
	if rec.PhotoPath != nil {
		photoURL = tc.Photos.URL(*rec.PhotoPath)
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Data updated successfully",
		"data":      rec,
		"photo_url": photoURL,
	})
}

func (tc *TripController) DeleteTrip(c *gin.Context) {
	rec, ok := tc.loadTrip(c)
	if !ok {
		return
	}
	if err := tc.Trips.Delete(c.Request.Context(), rec.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c)
			return
		}
		logrus.WithError(err).WithField("id", rec.ID).Error("DeleteTrip: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete data"})
		return
	}
	if rec.PhotoPath != nil {
		tc.removePhoto(*rec.PhotoPath)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data record deleted successfully"})
}

// SetConfirmed marks a trip as paid.
func (tc *TripController) SetConfirmed(c *gin.Context) {
	rec, ok := tc.loadTrip(c)
	if !ok {
		return
	}
	rec.Status = models.StatusConfirmed
	if err := tc.Trips.Save(c.Request.Context(), rec); err != nil {
		logrus.WithError(err).WithField("id", rec.ID).Error("SetConfirmed: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (tc *TripController) loadTrip(c *gin.Context) (*models.TripRecord, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	rec, err := tc.Trips.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c)
			return nil, false
		}
		logrus.WithError(err).WithField("id", id).Error("loadTrip: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return nil, false
	}
	return rec, true
}

func (tc *TripController) removePhoto(path string) {
	if err := tc.Photos.Delete(path); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("photo cleanup failed")
	}
}

func applyUpdate(rec *models.TripRecord, in updateTripInput) {
	if in.PlateNumber != nil {
		rec.PlateNumber = *in.PlateNumber
	}
	if in.Driver != nil {
		rec.Driver = in.Driver
	}
	if in.Origin != nil {
		rec.Origin = *in.Origin
	}
	if in.Destination != nil {
		rec.Destination = *in.Destination
	}
	if in.Cost != nil {
		rec.Cost = int64(*in.Cost)
	}
	if in.Price != nil {
		rec.Price = int64(*in.Price)
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if in.DeliveryStatus != nil {
		rec.DeliveryStatus = *in.DeliveryStatus
	}
}
