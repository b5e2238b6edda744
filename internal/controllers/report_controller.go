package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"
	"github.com/sirupsen/logrus"

	"trip_ledger/internal/models"
	"trip_ledger/internal/report"
	"trip_ledger/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves the monthly views of the trip table.
type ReportController struct {
	Trips repository.TripRepository
}

func NewReportController(trips repository.TripRepository) *ReportController {
	return &ReportController{Trips: trips}
}

// ListByMonth returns every dated trip grouped by "<Month> <Year>", newest first.
func (rc *ReportController) ListByMonth(c *gin.Context) {
	recs, err := rc.Trips.ListDated(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("ListByMonth: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Data grouped by month and year retrieved successfully",
		"dataByMonth": report.GroupByMonth(recs),
	})
}

// Summary returns the per-month status counts and profit/loss.
func (rc *ReportController) Summary(c *gin.Context) {
	recs, err := rc.Trips.ListDated(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Summary: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"dataByMonthYear": report.Summarize(recs),
	})
}

type recapInput struct {
	Month int `json:"month" form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `json:"year" form:"year" binding:"omitempty,min=1900,max=9999"`
}

// Recap sends an xlsx workbook of the trips of one month, or of all trips
// when no month is given.
func (rc *ReportController) Recap(c *gin.Context) {
	var input recapInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&input); err != nil {
			respondValidation(c, bindErrors(err))
			return
		}
	}
	if (input.Month == 0) != (input.Year == 0) {
		respondValidation(c, fieldErrors{"month": {"The month and year fields must be given together."}})
		return
	}

	var (
		recs     []models.TripRecord
		err      error
		title    = "Trip recap"
		fileName = "recap_all.xlsx"
	)
	if input.Month != 0 {
		start := models.NewDate(input.Year, time.Month(input.Month), 1)
		end := models.DateOf(now.With(start.Time).EndOfMonth())
		recs, err = rc.Trips.ListBetween(c.Request.Context(), start, end)
		title = "Trip recap " + report.MonthLabel(input.Year, time.Month(input.Month))
		fileName = fmt.Sprintf("recap_%04d-%02d.xlsx", input.Year, input.Month)
	} else {
		recs, err = rc.Trips.ListDated(c.Request.Context())
		// oldest first in the sheet
		for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
			recs[i], recs[j] = recs[j], recs[i]
		}
	}
	if err != nil {
		logrus.WithError(err).Error("Recap: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteRecap(&buf, title, recs); err != nil {
		logrus.WithError(err).Error("Recap: building workbook failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate excel"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
