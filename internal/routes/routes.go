package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/auth"
	"github.com/BruksfildServices01/barber-admin/internal/config"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/user"
	"github.com/BruksfildServices01/barber-admin/internal/handlers"
	"github.com/BruksfildServices01/barber-admin/internal/imaging"
	infraRepo "github.com/BruksfildServices01/barber-admin/internal/infra/repository"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
	ucUser "github.com/BruksfildServices01/barber-admin/internal/usecase/user"
	"github.com/BruksfildServices01/barber-admin/internal/validators"
)

var (
	adminOnly     = auth.Roles(domain.RoleAdmin)
	staff         = auth.Roles(domain.RoleAdmin, domain.RoleManager)
	anyRole       = auth.Roles(domain.RoleAdmin, domain.RoleManager, domain.RoleGuest)
	authenticated = auth.AllowList(nil)
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, store storage.ImageStore, log *zap.Logger) error {

	if err := validators.Register(); err != nil {
		return err
	}

	// ======================================================
	// INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	authenticator := auth.NewAuthenticator(userRepo, tokens)
	authn := middleware.AuthMiddleware(authenticator, log)

	// protect prefixes a route handler with authentication and the role check.
	protect := func(allow auth.AllowList, h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authn, middleware.RequireRoles(allow), h}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	users := ucUser.NewUsers(userRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authenticator, log)
	meHandler := handlers.NewMeHandler(users, log)
	usersHandler := handlers.NewUsersHandler(users, log)
	barbersHandler := handlers.NewBarbersHandler(db, log)
	servicesHandler := handlers.NewBarberServicesHandler(db, log)
	appointmentsHandler := handlers.NewAppointmentsHandler(db, log)
	imagesHandler := handlers.NewImagesHandler(store, imaging.Options{
		MaxWidth: cfg.Images.MaxWidth,
		WebP:     cfg.Images.WebP,
	}, cfg.Images.MaxBytes, log)

	// ------------------------------
	// AUTH
	// ------------------------------
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/me", protect(authenticated, meHandler.GetMe)...)

	// ------------------------------
	// USERS
	// ------------------------------
	r.GET("/users/any", usersHandler.Any)
	r.POST("/users/create-first", usersHandler.CreateFirst)
	r.GET("/users/roles", protect(adminOnly, usersHandler.Roles)...)
	r.GET("/users", protect(adminOnly, usersHandler.List)...)
	r.GET("/users/:id", protect(adminOnly, usersHandler.Get)...)
	r.POST("/users", protect(adminOnly, usersHandler.Create)...)
	r.POST("/users/update", protect(adminOnly, usersHandler.Update)...)

	// ------------------------------
	// BARBERS
	// ------------------------------
	r.GET("/barbers", barbersHandler.List)
	r.GET("/barbers/:id", barbersHandler.Get)
	r.POST("/barbers", protect(staff, barbersHandler.Create)...)
	r.POST("/barbers/update", protect(staff, barbersHandler.Update)...)
	r.POST("/barbers/delete", protect(staff, barbersHandler.Delete)...)

	// ------------------------------
	// BARBER SERVICES
	// ------------------------------
	r.GET("/barber-services", servicesHandler.List)
	r.GET("/barber-services/:id", servicesHandler.Get)
	r.POST("/barber-services", protect(staff, servicesHandler.Create)...)
	r.POST("/barber-services/update", protect(staff, servicesHandler.Update)...)

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	r.GET("/appointments", protect(anyRole, appointmentsHandler.List)...)
	r.GET("/appointments/:id", protect(anyRole, appointmentsHandler.Get)...)
	r.POST("/appointments", appointmentsHandler.Create)
	r.POST("/appointments/update", protect(staff, appointmentsHandler.Update)...)

	// ------------------------------
	// IMAGES
	// ------------------------------
	r.POST("/images", protect(authenticated, imagesHandler.Upload)...)
	r.GET("/images/:filename", imagesHandler.Get)

	return nil
}
