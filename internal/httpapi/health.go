package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler reports service and database liveness.
type HealthHandler struct {
	db *gorm.DB
}

// Check pings the database and reports the overall status.
func (h *HealthHandler) Check(c *gin.Context) {
	status, httpStatus := "UP", http.StatusOK
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.WithError(err).Error("health: database ping failed")
		status, httpStatus = "DOWN", http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, gin.H{"status": status, "timestamp": time.Now().UnixMilli()})
}
