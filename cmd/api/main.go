package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interntrack/internal/config"
	"interntrack/internal/geo"
	"interntrack/internal/httpmiddleware"
	"interntrack/internal/model"
	"interntrack/internal/notify"
	"interntrack/internal/store"
	"interntrack/internal/tracker"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	st := store.Seeded()

	var redisClient *store.Redis
	var q notify.Queue
	if cfg.QueueBackend == "redis" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		q = notify.NewRedisQueue(redisClient.Client, "interntrack:notifications")
	} else {
		q = notify.NewInMemory(64)
	}

	office := geo.Location{
		Latitude:  cfg.OfficeLatitude,
		Longitude: cfg.OfficeLongitude,
		RadiusKm:  cfg.OfficeRadiusKm,
	}
	svc := tracker.NewService(st, q, office)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		status := http.StatusOK
		redisHealthy := true
		if redisClient != nil {
			redisHealthy = redisClient.Healthy(c.Request.Context())
			if !redisHealthy {
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy})
	})

	v1 := r.Group("/v1")

	// ---- Logs ----

	v1.POST("/logs", func(c *gin.Context) {
		var req tracker.SubmitLogInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entry, err := svc.SubmitLog(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	})

	v1.POST("/logs/:id/review", func(c *gin.Context) {
		var req struct {
			Approved bool   `json:"approved"`
			Comment  string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entry, err := svc.ReviewLog(c.Request.Context(), c.Param("id"), req.Approved, req.Comment)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	})

	v1.GET("/students/:id/logs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"logs": st.LogsForStudent(c.Param("id"))})
	})

	// ---- Attendance ----

	v1.GET("/students/:id/attendance", func(c *gin.Context) {
		now := time.Now()
		year := intQuery(c, "year", now.Year())
		month := intQuery(c, "month", int(now.Month()))
		if month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month out of range"})
			return
		}
		c.JSON(http.StatusOK, svc.AttendanceMonth(c.Param("id"), year, time.Month(month)))
	})

	v1.POST("/checkins", func(c *gin.Context) {
		var req struct {
			StudentID string  `json:"student_id" binding:"required"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		evt, err := svc.CheckIn(c.Request.Context(), req.StudentID, req.Latitude, req.Longitude)
		if err != nil {
			var oor tracker.OutOfRangeError
			if errors.As(err, &oor) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":       oor.Error(),
					"distance_km": oor.DistanceKm,
					"max_km":      oor.MaxKm,
				})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, evt)
	})

	v1.POST("/exceptions", func(c *gin.Context) {
		var req model.AttendanceException
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e, err := svc.AddException(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	})

	v1.DELETE("/exceptions/:id", func(c *gin.Context) {
		if err := svc.RemoveException(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// ---- Tasks ----

	v1.GET("/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tasks": st.Tasks()})
	})

	v1.POST("/tasks", func(c *gin.Context) {
		var req model.Task
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t, err := svc.AddTask(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	})

	v1.POST("/tasks/:id/status", func(c *gin.Context) {
		var req struct {
			Status model.TaskStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t, err := svc.UpdateTaskStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	})

	v1.POST("/tasks/:id/deliverable", func(c *gin.Context) {
		var req model.TaskDeliverable
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t, err := svc.SubmitDeliverable(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	})

	v1.POST("/tasks/:id/feedback", func(c *gin.Context) {
		var req model.TaskFeedback
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t, err := svc.GiveFeedback(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	})

	// ---- Meetings ----

	v1.POST("/meetings", func(c *gin.Context) {
		var req model.Meeting
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mt, err := svc.ScheduleMeeting(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, mt)
	})

	// ---- Gamification ----

	v1.GET("/leaderboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"standings": svc.Leaderboard()})
	})

	v1.GET("/badges", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"badges": st.Badges()})
	})

	v1.GET("/students/:id/badges", func(c *gin.Context) {
		userID := c.Param("id")
		var earned []model.UserBadge
		for _, ub := range st.UserBadges() {
			if ub.UserID == userID {
				earned = append(earned, ub)
			}
		}
		c.JSON(http.StatusOK, gin.H{"earned": earned})
	})

	// ---- Skills ----

	v1.GET("/students/:id/skills", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"growth": svc.SkillGrowth(c.Param("id"))})
	})

	v1.POST("/assessments", func(c *gin.Context) {
		var req model.SkillAssessment
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		a, err := svc.AddSkillAssessment(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	})

	// ---- Leave ----

	v1.POST("/leaves", func(c *gin.Context) {
		var req model.LeaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lr, err := svc.RequestLeave(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, lr)
	})

	v1.POST("/leaves/:id/review", func(c *gin.Context) {
		var req struct {
			Approved bool `json:"approved"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lr, err := svc.ReviewLeave(c.Request.Context(), c.Param("id"), req.Approved)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, lr)
	})

	// ---- Notifications ----

	v1.GET("/notifications", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": st.NotificationsFor(userID)})
	})

	v1.POST("/notifications", func(c *gin.Context) {
		var req model.Notification
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, svc.Announce(c.Request.Context(), req))
	})

	v1.POST("/notifications/:id/read", func(c *gin.Context) {
		if err := st.MarkNotificationRead(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// ---- Users ----

	v1.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": st.Users()})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
