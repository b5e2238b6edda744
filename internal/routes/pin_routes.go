package routes

import (
	"trip_ledger/internal/controllers"

	"github.com/gin-gonic/gin"
)

func PinRoutes(r *gin.Engine, pins *controllers.PinController) {
	r.POST("/pin-verify", pins.VerifyPin)
	r.POST("/lockscreen", controllers.Lockscreen)
}
