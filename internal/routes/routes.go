// Package routes wires repositories, services and handlers together and
// registers every HTTP route on the Fiber app.
package routes

import (
	"log"

	"rishta/internal/handlers"
	"rishta/internal/middleware"
	"rishta/internal/models"
	"rishta/internal/repositories"
	"rishta/internal/services/auth"
	"rishta/internal/services/contact"
	"rishta/internal/services/directory"
	"rishta/internal/services/moderation"
	"rishta/internal/services/payment"
	"rishta/internal/services/profile"
	"rishta/internal/services/proposal"
	"rishta/internal/services/quota"
	"rishta/internal/services/storage"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App) {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	profileRepo := repositories.NewProfileRepository(repositories.DB)
	packageRepo := repositories.NewPackageRepository(repositories.DB)
	proposalRepo := repositories.NewProposalRepository(repositories.DB)

	// Services
	profileService := profile.NewService(profileRepo, repositories.CacheService)
	authService := auth.NewService(userRepo, profileService)
	directoryService := directory.NewService(profileRepo, repositories.CacheService)
	proposalService := proposal.NewService(proposalRepo, profileRepo)
	contactService := contact.NewService(proposalRepo, profileRepo)
	quotaService := quota.NewService(packageRepo)
	moderationService := moderation.NewService(profileRepo, repositories.CacheService)
	paymentService := payment.NewService()

	storageService, err := storage.NewServiceFromEnv()
	if err != nil {
		log.Fatal("Failed to initialize object storage:", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, storageService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	proposalHandler := handlers.NewProposalHandler(proposalService, contactService)
	packageHandler := handlers.NewPackageHandler(quotaService, paymentService, storageService)
	adminHandler := handlers.NewAdminHandler(moderationService, quotaService, userRepo, profileRepo, packageRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	setupPublicRoutes(app, authHandler, packageHandler)

	authenticated := app.Group("/api", authMiddleware.Handler)
	setupMemberRoutes(authenticated, authHandler, profileHandler, directoryHandler, proposalHandler, packageHandler)
	setupAdminRoutes(authenticated, authMiddleware, adminHandler)
}

func setupPublicRoutes(app *fiber.App, authHandler *handlers.AuthHandler, packageHandler *handlers.PackageHandler) {
	app.Get("/health", handlers.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Welcome to the Rishta API!") })

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/packages", packageHandler.Catalog)
}

func setupMemberRoutes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	directoryHandler *handlers.DirectoryHandler,
	proposalHandler *handlers.ProposalHandler,
	packageHandler *handlers.PackageHandler,
) {
	// Account
	router.Post("/logout", authHandler.Logout)
	router.Post("/change-password", authHandler.ChangePassword)

	// Own profile
	prof := router.Group("/profile")
	prof.Get("/", middleware.HasPermission(models.PermissionProfileRead), profileHandler.GetMyProfile)
	prof.Put("/", middleware.HasPermission(models.PermissionProfileWrite), profileHandler.UpdateMyProfile)
	prof.Post("/documents/:kind", middleware.HasPermission(models.PermissionProfileWrite), profileHandler.UploadDocument)

	// Directory browsing
	router.Get("/directory", middleware.HasPermission(models.PermissionDirectoryRead), directoryHandler.Browse)

	// Proposals and contact disclosure
	proposals := router.Group("/proposals")
	proposals.Get("/", middleware.HasPermission(models.PermissionProposalRead), proposalHandler.List)
	proposals.Post("/", middleware.HasPermission(models.PermissionProposalWrite), proposalHandler.Send)
	proposals.Post("/respond", middleware.HasPermission(models.PermissionProposalWrite), proposalHandler.Respond)
	proposals.Get("/status/:userID", middleware.HasPermission(models.PermissionProposalRead), proposalHandler.Status)
	router.Get("/contact/:userID", middleware.HasPermission(models.PermissionProposalRead), proposalHandler.Contact)

	// Packages
	packages := router.Group("/packages")
	packages.Get("/mine", middleware.HasPermission(models.PermissionPackageRead), packageHandler.MyPackages)
	packages.Post("/purchase/bank-transfer", middleware.HasPermission(models.PermissionPackageWrite), packageHandler.PurchaseBankTransfer)
	packages.Post("/purchase/card", middleware.HasPermission(models.PermissionPackageWrite), packageHandler.PurchaseCard)
}

func setupAdminRoutes(router fiber.Router, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler) {
	admin := router.Group("/admin", authMiddleware.AdminHandler)

	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetUsersPaginated)
	admin.Get("/profiles", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetProfilesPaginated)
	admin.Post("/profiles/:id/moderate", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ModerateProfile)

	admin.Get("/payments/pending", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetPendingPayments)
	admin.Post("/payments/:id/review", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ReviewPayment)

	admin.Get("/packages", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetAllPackages)
	admin.Post("/packages", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.CreatePackage)
	admin.Put("/packages/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.UpdatePackage)

	admin.Get("/cache/stats", middleware.HasPermission(models.PermissionReadAdmin), handlers.CacheStats)
}
