// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"shiftdesk/internal/cache"
	"shiftdesk/internal/config"
	"shiftdesk/internal/database"
	"shiftdesk/internal/middleware"
	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
	"shiftdesk/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	chatRepo       repository.ChatRepository
	attendanceRepo repository.AttendanceRepository
	taskRepo       repository.TaskRepository
	noteRepo       repository.NoteRepository
	incidentRepo   repository.IncidentRepository
	permissionRepo repository.PermissionRepository

	userService       *service.UserService
	feedService       *service.FeedService
	chatService       *service.ChatService
	attendanceService *service.AttendanceService
	taskService       *service.TaskService
	noteService       *service.NoteService
	incidentService   *service.IncidentService
	permissionService *service.PermissionService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("shiftdesk-api"),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		chatRepo:       repository.NewChatRepository(db),
		attendanceRepo: repository.NewAttendanceRepository(db),
		taskRepo:       repository.NewTaskRepository(db),
		noteRepo:       repository.NewNoteRepository(db),
		incidentRepo:   repository.NewIncidentRepository(db),
		permissionRepo: repository.NewPermissionRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.feedService = service.NewFeedService(server.postRepo, server.commentRepo)
	server.chatService = service.NewChatService(server.chatRepo, server.userRepo)
	server.attendanceService = service.NewAttendanceService(server.attendanceRepo)
	server.taskService = service.NewTaskService(server.taskRepo, server.userRepo)
	server.noteService = service.NewNoteService(server.noteRepo)
	server.incidentService = service.NewIncidentService(server.incidentRepo)
	server.permissionService = service.NewPermissionService(server.permissionRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Response{
				Success: false,
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Shiftdesk Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Everything below requires authentication
	protected := api.Group("", s.AuthRequired())

	// Feed routes. Specific /:id/:resource routes come BEFORE generic /:id.
	feed := protected.Group("/feed")
	feed.Get("/", s.GetFeed)
	feed.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	feed.Post("/:id/react", s.ReactToPost)
	feed.Post("/:id/comments", middleware.RateLimit(
		s.redis, 20, time.Minute, "create_comment"), s.CreateComment)
	feed.Post("/:id/comment", middleware.RateLimit(
		s.redis, 20, time.Minute, "create_comment"), s.CreateComment)
	feed.Delete("/comments/:commentId", s.DeleteComment)
	feed.Delete("/:id/comment/:commentId", s.DeleteComment)
	feed.Delete("/:id", s.DeletePost)

	// Chat routes
	chat := protected.Group("/chat")
	chat.Get("/conversations", s.GetConversations)
	chat.Get("/messages/:userId", s.GetMessages)
	chat.Post("/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_chat"), s.SendMessage)
	chat.Post("/read/:userId", s.MarkThreadRead)
	chat.Delete("/conversation/:userId", s.DeleteConversation)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/", s.GetUsers)
	users.Post("/", s.AdminRequired(), s.CreateUser)
	users.Get("/:id/profile", s.GetUser)
	users.Put("/:id/profile", s.UpdateUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.AdminRequired(), s.DeleteUser)
	users.Get("/:id", s.GetUser)

	// Attendance routes
	attendance := protected.Group("/attendance")
	attendance.Post("/clock-in", s.ClockIn)
	attendance.Post("/clock-out", s.ClockOut)
	attendance.Post("/breaks/start", s.StartBreak)
	attendance.Post("/breaks/end", s.EndBreak)
	attendance.Get("/current", s.GetCurrentAttendance)
	attendance.Get("/history", s.GetAttendanceHistory)

	// Activity routes
	activity := protected.Group("/activity")
	activity.Post("/heartbeat", s.Heartbeat)
	activity.Post("/afk", s.MarkAFK)
	activity.Get("/status", s.GetActivityStatus)

	// Task routes
	tasks := protected.Group("/tasks")
	tasks.Get("/", s.GetTasks)
	tasks.Post("/", s.CreateTask)
	tasks.Post("/:id/move", s.MoveTask)
	tasks.Put("/:id", s.UpdateTask)
	tasks.Delete("/:id", s.DeleteTask)

	// Note routes
	notes := protected.Group("/notes")
	notes.Get("/", s.GetNotes)
	notes.Post("/", s.CreateNote)
	notes.Put("/:id", s.UpdateNote)
	notes.Delete("/:id", s.DeleteNote)

	// Incident routes
	incidents := protected.Group("/incidents")
	incidents.Get("/", s.GetIncidents)
	incidents.Post("/", s.CreateIncident)
	incidents.Put("/:id/status", s.StaffRequired(), s.UpdateIncidentStatus)
	incidents.Delete("/:id", s.AdminRequired(), s.DeleteIncident)

	// Permission request routes
	permissions := protected.Group("/permissions")
	permissions.Get("/", s.GetMyPermissions)
	permissions.Post("/", s.CreatePermission)
	permissions.Get("/pending", s.StaffRequired(), s.GetPendingPermissions)
	permissions.Post("/:id/approve", s.StaffRequired(), s.ApprovePermission)
	permissions.Post("/:id/reject", s.StaffRequired(), s.RejectPermission)
	permissions.Delete("/:id", s.CancelPermission)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/overview", s.GetAdminOverview)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It validates the JWT,
// checks the revocation list, and stores the user ID in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
			c.Locals("jti", jti)
		}
		if exp, ok := claims["exp"].(float64); ok {
			c.Locals("tokenExp", int64(exp))
		}

		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return s.roleRequired(func(u *models.User) bool { return u.IsAdmin() },
		"Admin access required")
}

// StaffRequired returns middleware that admits supervisors and admins only.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) StaffRequired() fiber.Handler {
	return s.roleRequired(func(u *models.User) bool { return u.IsStaff() },
		"Staff access required")
}

func (s *Server) roleRequired(allowed func(*models.User) bool, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.currentUser(c)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		if !allowed(user) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError(message))
		}
		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Shiftdesk API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
