package routes

import (
	"trip_ledger/internal/controllers"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(r *gin.Engine, reports *controllers.ReportController) {
	r.GET("/data", reports.ListByMonth)
	r.GET("/sum", reports.Summary)
	r.POST("/recap", reports.Recap)
}
