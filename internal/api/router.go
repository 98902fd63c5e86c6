package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/availability"
	availabilityHttp "github.com/drivelane/driving-school-backend/internal/availability/http"
	"github.com/drivelane/driving-school-backend/internal/booking"
	bookingHttp "github.com/drivelane/driving-school-backend/internal/booking/http"
	"github.com/drivelane/driving-school-backend/internal/credit"
	creditHttp "github.com/drivelane/driving-school-backend/internal/credit/http"
	"github.com/drivelane/driving-school-backend/internal/event"
	eventHttp "github.com/drivelane/driving-school-backend/internal/event/http"
	"github.com/drivelane/driving-school-backend/internal/exception"
	exceptionHttp "github.com/drivelane/driving-school-backend/internal/exception/http"
	"github.com/drivelane/driving-school-backend/internal/location"
	locationHttp "github.com/drivelane/driving-school-backend/internal/location/http"
	"github.com/drivelane/driving-school-backend/internal/template"
	templateHttp "github.com/drivelane/driving-school-backend/internal/template/http"
	"github.com/drivelane/driving-school-backend/internal/user"
	userHttp "github.com/drivelane/driving-school-backend/internal/user/http"
	"github.com/drivelane/driving-school-backend/internal/vehicle"
	vehicleHttp "github.com/drivelane/driving-school-backend/internal/vehicle/http"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
	workinghoursHttp "github.com/drivelane/driving-school-backend/internal/workinghours/http"
)

// Config holds every service the router exposes over HTTP.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	LocationService     location.Service
	VehicleService      vehicle.Service
	WorkingHoursService workinghours.Service
	TemplateService     template.Service
	ExceptionService    exception.Service
	AvailabilityService availability.Service
	CreditLedger        credit.Ledger
	BookingService      booking.Service
	EventRepo           event.Repository

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware and registers every module's routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)
	instructorMiddleware := RequireInstructor(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	locationHandler := locationHttp.NewHandler(cfg.LocationService)
	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleService)
	workinghoursHandler := workinghoursHttp.NewHandler(cfg.WorkingHoursService)
	templateHandler := templateHttp.NewHandler(cfg.TemplateService)
	exceptionHandler := exceptionHttp.NewHandler(cfg.ExceptionService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	creditHandler := creditHttp.NewHandler(cfg.CreditLedger)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	eventHandler := eventHttp.NewHandler(cfg.EventRepo)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		locationHttp.RegisterRoutes(v1, locationHandler, authMiddleware, adminMiddleware)
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware, adminMiddleware)
		workinghoursHttp.RegisterRoutes(v1, workinghoursHandler, authMiddleware, instructorMiddleware)
		templateHttp.RegisterRoutes(v1, templateHandler, authMiddleware, instructorMiddleware)
		exceptionHttp.RegisterRoutes(v1, exceptionHandler, authMiddleware, instructorMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		creditHttp.RegisterRoutes(v1, creditHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		eventHttp.RegisterRoutes(v1, eventHandler, authMiddleware, adminMiddleware)
	}

	return r
}
