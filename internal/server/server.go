package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ricore77995/strikehouse-sub000/internal/area"
	"github.com/ricore77995/strikehouse-sub000/internal/auth"
	"github.com/ricore77995/strikehouse-sub000/internal/checkin"
	"github.com/ricore77995/strikehouse-sub000/internal/coach"
	"github.com/ricore77995/strikehouse-sub000/internal/config"
	"github.com/ricore77995/strikehouse-sub000/internal/credit"
	"github.com/ricore77995/strikehouse-sub000/internal/email"
	"github.com/ricore77995/strikehouse-sub000/internal/member"
	"github.com/ricore77995/strikehouse-sub000/internal/rental"
	"github.com/ricore77995/strikehouse-sub000/internal/staff"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	areaRepo := area.NewRepository(db)
	coachRepo := coach.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	memberRepo := member.NewRepository(db)
	rentalRepo := rental.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)
	staffRepo := staff.NewRepository(db)

	areaHandler := area.NewHandler(area.NewService(areaRepo))
	coachHandler := coach.NewHandler(coach.NewService(coachRepo))
	creditHandler := credit.NewHandler(credit.NewService(creditRepo))
	memberHandler := member.NewHandler(memberRepo)
	rentalHandler := rental.NewHandler(rental.NewService(rentalRepo, areaRepo, coachRepo, emailService, cfg.CoachNoticeHours, cfg.AdminNoticeHours))
	checkinHandler := checkin.NewHandler(checkin.NewService(checkinRepo, memberRepo, rentalRepo, areaRepo))
	staffHandler := staff.NewHandler(staff.NewService(staffRepo, cfg.JWTSecret))

	public := router.Group("/auth")
	{
		public.POST("/register", staffHandler.Register)
		public.POST("/login", staffHandler.Login)
		public.POST("/refresh", staffHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", staffHandler.GetMe)

		protected.GET("/areas", areaHandler.ListAreas)
		protected.GET("/areas/:areaID", areaHandler.GetArea)
		protected.GET("/areas/:areaID/rentals", rentalHandler.ListByArea)

		protected.GET("/coaches", coachHandler.ListCoaches)
		protected.GET("/coaches/:coachID", coachHandler.GetCoach)
		protected.GET("/coaches/:coachID/quote", coachHandler.QuoteFee)
		protected.GET("/coaches/:coachID/rentals", rentalHandler.ListByCoach)
		protected.GET("/coaches/:coachID/credits", creditHandler.ListEntries)
		protected.GET("/coaches/:coachID/credits/balance", creditHandler.GetBalance)
		protected.POST("/coaches/:coachID/credits/consume", creditHandler.Consume)

		protected.POST("/rentals", rentalHandler.CreateRental)
		protected.GET("/rentals/:rentalID", rentalHandler.GetRental)
		protected.POST("/rentals/:rentalID/cancel", rentalHandler.CancelRental)
		protected.GET("/series/:seriesID/rentals", rentalHandler.ListBySeries)
		protected.POST("/series/:seriesID/cancel", rentalHandler.CancelSeries)

		protected.POST("/members", memberHandler.CreateMember)
		protected.GET("/members", memberHandler.ListMembers)
		protected.GET("/members/:memberID", memberHandler.GetMember)
		protected.PATCH("/members/:memberID", memberHandler.UpdateMember)

		protected.POST("/check-ins/member", checkinHandler.CheckInMember)
		protected.POST("/check-ins/guest", checkinHandler.CheckInGuest)
		protected.GET("/check-ins", checkinHandler.ListRecords)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/areas", areaHandler.CreateArea)
		admin.PATCH("/areas/:areaID", areaHandler.UpdateArea)
		admin.POST("/areas/:areaID/deactivate", areaHandler.DeactivateArea)

		admin.POST("/coaches", coachHandler.CreateCoach)
		admin.PATCH("/coaches/:coachID", coachHandler.UpdateCoach)
		admin.POST("/coaches/:coachID/deactivate", coachHandler.DeactivateCoach)
		admin.POST("/coaches/:coachID/credits/adjust", creditHandler.Adjust)
		admin.POST("/coaches/:coachID/credits/recompute", creditHandler.Recompute)

		admin.POST("/rentals/:rentalID/complete", rentalHandler.CompleteRental)
		admin.POST("/rentals/complete-elapsed", rentalHandler.CompleteElapsed)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
