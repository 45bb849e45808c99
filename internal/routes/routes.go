// Package routes defines the API routing configuration.
// It wires repositories, services, and handlers together and groups the
// wizard endpoints under the authenticated API surface.
package routes

import (
	"log"

	"origo/internal/config"
	"origo/internal/handlers"
	"origo/internal/leadstore"
	"origo/internal/middleware"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/repositories"
	"origo/internal/services/auth"
	"origo/internal/services/bre"
	"origo/internal/services/otp"
	"origo/internal/services/payment"
	"origo/internal/services/pincode"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Origination client and lead store
	client := origination.NewClient(config.OriginationBaseURL(), config.OriginationToken())

	var drafts repositories.DraftRepository
	if db != nil {
		drafts = repositories.NewDraftRepository(db)
	}
	store := leadstore.NewStore(client, drafts)
	if drafts != nil {
		if restored, err := drafts.LoadSnapshots(); err != nil {
			log.Printf("failed to load draft snapshots: %v", err)
		} else if len(restored) > 0 {
			store.RestoreLeads(restored)
			log.Printf("restored %d draft snapshots", len(restored))
		}
	}

	// Services
	authService := auth.NewService(repositories.NewOfficerRepository(db))
	otpService := otp.NewService(client, store)
	breService := bre.NewService(client, store)
	pincodeService := pincode.NewService(client, repositories.CacheService)
	paymentService := payment.NewService()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	leadHandler := handlers.NewLeadHandler(store, client)
	stepHandler := handlers.NewStepHandler(store, client)
	addressHandler := handlers.NewAddressHandler(store, client)
	coAppHandler := handlers.NewCoApplicantHandler(store, client)
	otpHandler := handlers.NewOTPHandler(otpService)
	documentHandler := handlers.NewDocumentHandler(store, client)
	breHandler := handlers.NewBREHandler(store, breService)
	paymentHandler := handlers.NewPaymentHandler(store, paymentService)
	pincodeHandler := handlers.NewPincodeHandler(pincodeService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)

	setupLeadRoutes(protected, leadHandler, otpHandler)
	setupStepRoutes(protected, stepHandler, addressHandler, documentHandler, breHandler, paymentHandler)
	setupCoApplicantRoutes(protected, coAppHandler)

	protected.Get("/pincode/:code", pincodeHandler.Lookup)
}

func setupLeadRoutes(router fiber.Router, h *handlers.LeadHandler, otpHandler *handlers.OTPHandler) {
	leads := router.Group("/leads")
	leads.Get("/", h.ListLeads)
	leads.Get("/stats", h.Stats)
	leads.Post("/", h.CreateLead)
	leads.Post("/refresh", h.RefreshInBackground)
	leads.Get("/:id", h.GetLead)
	leads.Post("/:id/open", h.OpenLead)
	leads.Delete("/:id", middleware.RequirePermission(models.PermissionLeadWrite), h.DeleteLead)
	leads.Patch("/:id/status", middleware.RequirePermission(models.PermissionStatusWrite), h.UpdateStatus)
	leads.Post("/:id/submit", h.SubmitLead)

	// Mobile verification
	leads.Post("/:id/start-verification", otpHandler.Start)
	leads.Post("/:id/verify-otp", otpHandler.Verify)
	leads.Post("/:id/resend-otp", otpHandler.Resend)
}

func setupStepRoutes(router fiber.Router, steps *handlers.StepHandler, addresses *handlers.AddressHandler, documents *handlers.DocumentHandler, breHandler *handlers.BREHandler, payments *handlers.PaymentHandler) {
	lead := router.Group("/leads/:id")

	// Primary applicant wizard steps
	lead.Put("/steps/personal", steps.SavePersonal)
	lead.Put("/steps/identity", steps.SaveIdentity)
	lead.Put("/steps/address", addresses.SaveAddresses)
	lead.Put("/steps/employment", steps.SaveEmployment)
	lead.Put("/steps/co-applicant-intent", steps.SaveCoApplicantIntent)
	lead.Put("/steps/collateral", steps.SaveCollateral)
	lead.Put("/steps/terms", steps.SaveTerms)

	// Address book
	lead.Post("/addresses", addresses.AddAddress)
	lead.Delete("/addresses/:addressId", addresses.DeleteAddress)
	lead.Put("/addresses/:addressId/primary", addresses.SetPrimary)

	// Documents
	lead.Post("/documents", documents.Upload)
	lead.Delete("/documents/:documentId", documents.Delete)

	// Risk assessment
	lead.Get("/bre/questions", breHandler.Questions)
	lead.Post("/bre/trigger", breHandler.Trigger)
	lead.Post("/bre/answers", breHandler.SubmitAnswers)

	// Fee collection
	lead.Post("/payments", payments.CreateSession)
	lead.Post("/payments/:paymentId/sent", payments.MarkSent)
	lead.Get("/payments/:paymentId", payments.Poll)
	lead.Delete("/payments/:paymentId", payments.Delete)
}

func setupCoApplicantRoutes(router fiber.Router, h *handlers.CoApplicantHandler) {
	coApps := router.Group("/leads/:id/coapplicants")
	coApps.Post("/", h.Create)
	coApps.Patch("/:coApplicantId", h.Patch)
	coApps.Delete("/:coApplicantId", h.Delete)

	// Sub-wizard steps
	coApps.Put("/:coApplicantId/steps/basic", h.SaveBasicDetails)
	coApps.Put("/:coApplicantId/steps/identity", h.SaveIdentity)
	coApps.Put("/:coApplicantId/steps/address", h.SaveAddresses)
	coApps.Put("/:coApplicantId/steps/employment", h.SaveEmployment)
}
