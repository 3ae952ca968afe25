package apiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/apiserver/handlers"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/apiserver/middleware"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/auth"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/config"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/eventbus"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/postgres"
	redisclient "github.com/BOYRAHEEM/estate-management-system-sub000/pkg/store/redis"
)

type Server struct {
	router    *gin.Engine
	db        *postgres.Store
	redis     *redisclient.Client
	cfg       *config.Config
	logger    *zap.Logger
	tokens    *auth.TokenManager
	bus       *eventbus.Bus
	guard     *core.AssignmentGuard
	workflow  *core.DamageWorkflow
	occupancy *core.OccupancyResolver
}

func NewServer(db *postgres.Store, redis *redisclient.Client, cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		db:     db,
		redis:  redis,
		cfg:    cfg,
		logger: logger,
		tokens: auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL),
	}

	if redis != nil {
		s.bus = eventbus.NewBus(redis.Client())
	}
	if db != nil {
		coreStore := postgres.NewCoreStore(db.DB())
		s.guard = core.NewAssignmentGuard(coreStore, logger)
		s.workflow = core.NewDamageWorkflow(coreStore, logger)
		s.occupancy = core.NewOccupancyResolver(coreStore)
	}

	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.Use(middleware.Auth(s.tokens))

		housingHandler := handlers.NewHousingHandler(s.db, s.occupancy, s.logger)
		api.POST("/units", housingHandler.Create)
		api.GET("/units", housingHandler.List)
		api.GET("/units/:id", housingHandler.Get)
		api.PUT("/units/:id", housingHandler.Update)
		api.DELETE("/units/:id", housingHandler.Delete)
		api.GET("/units/:id/occupancy", housingHandler.Occupancy)

		roomHandler := handlers.NewRoomHandler(s.db, s.occupancy, s.logger)
		api.POST("/rooms", roomHandler.Create)
		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/:id", roomHandler.Get)
		api.PUT("/rooms/:id", roomHandler.Update)
		api.DELETE("/rooms/:id", roomHandler.Delete)
		api.GET("/rooms/:id/occupancy", roomHandler.Occupancy)

		inventoryHandler := handlers.NewInventoryHandler(s.db, s.logger)
		api.POST("/items", inventoryHandler.Create)
		api.GET("/items", inventoryHandler.List)
		api.GET("/items/:id", inventoryHandler.Get)
		api.PUT("/items/:id", inventoryHandler.Update)
		api.DELETE("/items/:id", inventoryHandler.Delete)

		employeeHandler := handlers.NewEmployeeHandler(s.db, s.guard, s.bus, s.logger)
		api.POST("/employees", employeeHandler.Create)
		api.GET("/employees", employeeHandler.List)
		api.GET("/employees/:id", employeeHandler.Get)
		api.PUT("/employees/:id", employeeHandler.Update)
		api.DELETE("/employees/:id", employeeHandler.Delete)
		api.PUT("/employees/:id/room", employeeHandler.AssignRoom)

		damageHandler := handlers.NewDamageHandler(s.db, s.workflow, s.bus, s.logger)
		api.POST("/damage-reports", damageHandler.File)
		api.GET("/damage-reports", damageHandler.List)
		api.GET("/damage-reports/summary", damageHandler.Summary)
		api.GET("/damage-reports/recently-repaired", damageHandler.RecentlyRepaired)
		api.GET("/damage-reports/:id", damageHandler.Get)
		api.PUT("/damage-reports/:id/status", damageHandler.ChangeStatus)

		dashboardHandler := handlers.NewDashboardHandler(s.occupancy, s.workflow, s.redis, s.cfg.Dashboard.CacheTTL, s.logger)
		api.GET("/dashboard/rooms", dashboardHandler.RoomStats)
		api.GET("/dashboard/badges", dashboardHandler.Badges)
	}

	s.router = r
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
