package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/choreboard/internal/handler"
	"github.com/dukerupert/choreboard/internal/middleware"
	"github.com/dukerupert/choreboard/internal/service"
	ws "github.com/dukerupert/choreboard/internal/websocket"
)

// Config holds the transport settings that are not handled by http.Server.
type Config struct {
	// WriteLimit is the number of write requests a client IP may make per
	// minute. Zero disables the limit.
	WriteLimit int
	// WSOrigins lists extra origins allowed to open the change feed.
	WSOrigins []string
}

type Server struct {
	hub         *ws.Hub
	cfg         Config
	buildingH   *handler.BuildingHandler
	placeH      *handler.PlaceHandler
	taskH       *handler.TaskHandler
	userH       *handler.UserHandler
	assignmentH *handler.AssignmentHandler
	taskLogH    *handler.TaskLogHandler
	pointUsageH *handler.PointUsageHandler
	dashboardH  *handler.DashboardHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(svc *service.Service, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	return &Server{
		hub:         hub,
		cfg:         cfg,
		buildingH:   handler.NewBuildingHandler(svc, hub, logger.With("component", "building")),
		placeH:      handler.NewPlaceHandler(svc, hub, logger.With("component", "place")),
		taskH:       handler.NewTaskHandler(svc, hub, logger.With("component", "task")),
		userH:       handler.NewUserHandler(svc, hub, logger.With("component", "user")),
		assignmentH: handler.NewAssignmentHandler(svc, hub, logger.With("component", "assignment")),
		taskLogH:    handler.NewTaskLogHandler(svc, hub, logger.With("component", "task_log")),
		pointUsageH: handler.NewPointUsageHandler(svc, hub, logger.With("component", "point_usage")),
		dashboardH:  handler.NewDashboardHandler(svc, logger.With("component", "dashboard")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Hub returns the change-feed hub so it can be closed at shutdown.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.dashboardH.Health)
	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.cfg.WSOrigins))

	// Building API routes
	mux.HandleFunc("GET /api/buildings", s.buildingH.List)
	mux.HandleFunc("POST /api/buildings", s.buildingH.Create)
	mux.HandleFunc("GET /api/buildings/{id}", s.buildingH.Get)
	mux.HandleFunc("DELETE /api/buildings/{id}", s.buildingH.Delete)
	mux.HandleFunc("GET /api/buildings/{id}/places", s.buildingH.Places)

	// Place API routes
	mux.HandleFunc("GET /api/places", s.placeH.List)
	mux.HandleFunc("POST /api/places", s.placeH.Create)
	mux.HandleFunc("GET /api/places/{id}", s.placeH.Get)
	mux.HandleFunc("DELETE /api/places/{id}", s.placeH.Delete)

	// Task API routes
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("GET /api/tasks/{id}/assignments", s.assignmentH.ListForTask)
	mux.HandleFunc("POST /api/tasks/{id}/assignments", s.assignmentH.CreateForTask)
	mux.HandleFunc("DELETE /api/tasks/{id}/assignments/{assignment_id}", s.assignmentH.DeleteForTask)

	// Assignment API routes
	mux.HandleFunc("GET /api/assignments", s.assignmentH.List)
	mux.HandleFunc("POST /api/assignments", s.assignmentH.Create)
	mux.HandleFunc("DELETE /api/assignments/{id}", s.assignmentH.Delete)

	// User API routes
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("POST /api/users", s.userH.Create)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.HandleFunc("DELETE /api/users/{id}", s.userH.Delete)

	// Ledger API routes
	mux.HandleFunc("GET /api/task-logs", s.taskLogH.List)
	mux.HandleFunc("POST /api/task-logs", s.taskLogH.Create)
	mux.HandleFunc("GET /api/point-usages", s.pointUsageH.List)
	mux.HandleFunc("POST /api/point-usages", s.pointUsageH.Create)

	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Dashboard)
	mux.HandleFunc("GET /api/rankings", s.dashboardH.Rankings)

	limited := middleware.LimitWrites(s.rateLimiter, s.cfg.WriteLimit, time.Minute)(mux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(limited)
}
