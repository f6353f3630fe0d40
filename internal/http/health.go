package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/database"
)

// HealthController reports service liveness and database reachability.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (controller *HealthController) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	sqlDB, err := controller.db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"version": controller.version,
	})
}
