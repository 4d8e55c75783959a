package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health probes the two backing stores. Postgres down means nothing works, so
// it yields 503. Redis only backs the logout denylist, which fails open, so a
// Redis outage reports "degradado" with 200 and the API stays usable.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{"postgres": "ok", "redis": "ok"}
		status := http.StatusOK
		overall := "ok"

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["postgres"] = "indisponivel"
			status = http.StatusServiceUnavailable
			overall = "indisponivel"
		}
		if rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "indisponivel"
			if overall == "ok" {
				overall = "degradado"
			}
		}

		c.JSON(status, gin.H{
			"service": "sistemadecadastro",
			"status":  overall,
			"checks":  checks,
		})
	}
}
