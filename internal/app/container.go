package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/api"
	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/availability"
	"github.com/drivelane/driving-school-backend/internal/booking"
	"github.com/drivelane/driving-school-backend/internal/credit"
	"github.com/drivelane/driving-school-backend/internal/event"
	"github.com/drivelane/driving-school-backend/internal/exception"
	"github.com/drivelane/driving-school-backend/internal/location"
	"github.com/drivelane/driving-school-backend/internal/payment"
	"github.com/drivelane/driving-school-backend/internal/template"
	"github.com/drivelane/driving-school-backend/internal/user"
	"github.com/drivelane/driving-school-backend/internal/vehicle"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	CancellationWindow  time.Duration
	SlotIntervalMinutes int
	BranchTimezone      *time.Location
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Branch and vehicle modules
	locRepo := location.NewPgxRepository(cfg.DBPool)
	locService := location.NewService(locRepo)
	vehRepo := vehicle.NewPgxRepository(cfg.DBPool)
	vehService := vehicle.NewService(vehRepo, locService)

	// Scheduling modules
	whRepo := workinghours.NewPgxRepository(cfg.DBPool)
	whService := workinghours.NewService(whRepo)
	tplRepo := template.NewPgxRepository(cfg.DBPool)
	tplService := template.NewService(cfg.DBPool, tplRepo, whRepo, cfg.Logger)
	excRepo := exception.NewPgxRepository(cfg.DBPool)
	excService := exception.NewService(excRepo, cfg.Logger)

	// Booking and funding modules
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(
		whRepo, tplRepo, excRepo, bookingRepo,
		cfg.SlotIntervalMinutes, cfg.BranchTimezone,
	)
	creditRepo := credit.NewPgxRepository(cfg.DBPool)
	ledger := credit.NewLedger(cfg.DBPool, creditRepo, cfg.Logger)
	payments := payment.NewLogProcessor(cfg.Logger)

	// Lifecycle event recording
	eventRepo := event.NewPgxRepository(cfg.DBPool)
	recorder := event.NewRecorder(eventRepo, cfg.Logger)

	bookingService := booking.NewService(booking.Config{
		Pool:           cfg.DBPool,
		Repo:           bookingRepo,
		WorkingHours:   whRepo,
		Templates:      tplRepo,
		Exceptions:     excRepo,
		Availability:   availService,
		Ledger:         ledger,
		Payments:       payments,
		Sink:           recorder,
		Logger:         cfg.Logger,
		CancelWindow:   cfg.CancellationWindow,
		BranchTimezone: cfg.BranchTimezone,
	})

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		LocationService:     locService,
		VehicleService:      vehService,
		WorkingHoursService: whService,
		TemplateService:     tplService,
		ExceptionService:    excService,
		AvailabilityService: availService,
		CreditLedger:        ledger,
		BookingService:      bookingService,
		EventRepo:           eventRepo,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
