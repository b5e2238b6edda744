package routes

import (
	"trip_ledger/internal/controllers"

	"github.com/gin-gonic/gin"
)

func DataRoutes(r *gin.Engine, trips *controllers.TripController) {
	data := r.Group("/data")
	{
		data.POST("", trips.CreateTrip)
		data.GET("/:id", trips.GetTrip)
		data.PUT("/:id", trips.UpdateTrip)
		data.PATCH("/:id", trips.UpdateTrip)
		data.DELETE("/:id", trips.DeleteTrip)
	}
	r.PUT("/setlunas/:id", trips.SetConfirmed)
}
