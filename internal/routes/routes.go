package routes

import (
	"net/http"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trip_ledger/internal/auth"
	"trip_ledger/internal/config"
	"trip_ledger/internal/controllers"
	"trip_ledger/internal/logger"
	"trip_ledger/internal/middleware"
	"trip_ledger/internal/repository"
	"trip_ledger/internal/storage"
)

// SetupRouter wires repositories, controllers and middleware onto a gin engine.
func SetupRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(
		ginlog.SetLogger(ginlog.WithWriter(logger.Output()), ginlog.WithUTC(true)),
		gin.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
	)

	trips := repository.NewTripRepository(db)
	photos := storage.NewPhotoStore(cfg.StorageDir, cfg.PublicURL, cfg.MaxPhotoBytes)

	HealthRoutes(r)
	DataRoutes(r, controllers.NewTripController(trips, photos, time.Now))
	ReportRoutes(r, controllers.NewReportController(trips))
	PinRoutes(r, controllers.NewPinController(auth.NewPinVerifier(db, time.Now)))

	// Photos are stored under <StorageDir>/uploads and linked as /storage/uploads/...
	r.Static("/storage", cfg.StorageDir)

	return r
}

func HealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
