package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-dashboard-api/api/swagger"
	"github.com/noah-isme/school-dashboard-api/internal/middleware"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
	"github.com/noah-isme/school-dashboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-dashboard-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Teachers  *TeacherHandler
	Students  *StudentHandler
	Dashboard *DashboardHandler
	Auth      *AuthHandler
	Metrics   *MetricsHandler
}

// NewRouter assembles the gin engine. tokens validates bearer tokens for the
// protected routes; metrics may be nil.
func NewRouter(cfg *config.Config, logr *zap.Logger, h Handlers, tokens tokenValidator, metrics *service.MetricsService) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	if cfg.IsDevelopment() {
		r.Use(response.ExposeDetail())
	}

	if h.Metrics != nil {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.GET("/health", h.Dashboard.Health)

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", middleware.JWT(tokens), middleware.RequireRoles(), h.Auth.Me)

	dashboard := api.Group("/dashboard")
	if cfg.Dashboard.RequireAuth {
		dashboard.Use(middleware.JWT(tokens), middleware.RequireRoles(models.Roles()...))
	}
	dashboard.GET("/teachers-active", h.Teachers.Active)
	dashboard.GET("/teachers-stats", h.Teachers.Stats)
	dashboard.GET("/teachers-active-list", h.Teachers.ActiveList)
	dashboard.GET("/teachers-search", h.Teachers.Search)
	dashboard.GET("/teachers-by-month", h.Teachers.ByMonth)
	dashboard.GET("/teacher-detail/:id", h.Teachers.Detail)

	dashboard.GET("/students-active", h.Students.Active)
	dashboard.GET("/students-stats", h.Students.Stats)
	dashboard.GET("/students-active-list", h.Students.ActiveList)
	dashboard.GET("/students-search", h.Students.Search)
	dashboard.GET("/student-detail/:nis", h.Students.Detail)
	dashboard.GET("/students-by-year", h.Students.ByYear)
	dashboard.GET("/students-by-status", h.Students.ByStatus)

	dashboard.GET("/summary", h.Dashboard.Summary)

	r.NoRoute(response.RouteNotFound(Endpoints(r)))
	return r
}

// Endpoints lists the API routes registered on r as "METHOD /path".
func Endpoints(r *gin.Engine) []string {
	routes := r.Routes()
	endpoints := make([]string, 0, len(routes))
	for _, route := range routes {
		if !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		endpoints = append(endpoints, route.Method+" "+route.Path)
	}
	return endpoints
}
