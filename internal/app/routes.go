package app

import (
	"github.com/SomuSingh11/timely/internal/ai"
	"github.com/SomuSingh11/timely/internal/auth"
	"github.com/SomuSingh11/timely/internal/cache"
	"github.com/SomuSingh11/timely/internal/config"
	"github.com/SomuSingh11/timely/internal/handlers"
	"github.com/SomuSingh11/timely/internal/repo"
	"github.com/SomuSingh11/timely/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	trackCache := cache.NewTrackCache(rdb, cfg.Redis.DefaultTTL.Duration())

	userRepo := repo.NewPGUserRepo(db)
	taskRepo := repo.NewPGTaskRepo(db)
	timeLogRepo := repo.NewPGTimeLogRepo(db)

	userSvc := service.NewUserService(userRepo)
	taskSvc := service.NewTaskService(taskRepo, timeLogRepo, trackCache)
	timerSvc := service.NewTimerService(timeLogRepo, taskRepo, trackCache)
	summarySvc := service.NewSummaryService(timeLogRepo, taskRepo, trackCache)

	gemini := ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	insightSvc := service.NewInsightService(summarySvc, taskRepo, gemini, cfg.Gemini.Timeout.Duration())

	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, sessionStore, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	registerTaskRoutes(protected, handlers.NewTaskHandler(taskSvc))
	registerTimeLogRoutes(protected, handlers.NewTimeLogHandler(timerSvc))
	registerSummaryRoutes(protected, handlers.NewSummaryHandler(summarySvc, insightSvc))
	registerAIRoutes(protected, handlers.NewAIHandler(insightSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Timely API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, sessions auth.Sessions, h *handlers.AuthHandler) {
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", auth.RequireSession(sessions), h.Me)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.GET("/tasks/:id", h.GetByID)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
}

func registerTimeLogRoutes(api *gin.RouterGroup, h *handlers.TimeLogHandler) {
	api.POST("/timelogs", h.Start)
	api.GET("/timelogs", h.List)
	api.GET("/timelogs/active", h.Active)
	api.PATCH("/timelogs/:id/stop", h.Stop)
}

func registerSummaryRoutes(api *gin.RouterGroup, h *handlers.SummaryHandler) {
	api.GET("/summary/daily", h.Daily)
	api.POST("/summary/insights", h.Insights)
}

func registerAIRoutes(api *gin.RouterGroup, h *handlers.AIHandler) {
	api.POST("/ai/generate", h.Generate)
}
