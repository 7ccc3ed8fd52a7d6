package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawhaven/adoption-api/internal/application/adoption"
	"github.com/pawhaven/adoption-api/internal/application/auth"
	"github.com/pawhaven/adoption-api/internal/application/usecase"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	PetUC      *usecase.PetUseCase
	AdoptionUC *adoption.AdoptionUseCase
	SavedUC    *adoption.SavedUseCase
	JWTSecret  string
}

// Router registers the API routes as three nested scopes, one per trust tier.
// A route declared in a scope is unreachable unless every enclosing gate
// passed, which keeps the trust boundary in one place instead of scattered
// per-handler checks. Ownership checks (subject == resource owner) are
// resource-specific and live in the individual use cases.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	petHandler := NewPetHandler(deps.PetUC)
	adoptionHandler := NewAdoptionHandler(deps.AdoptionUC, deps.SavedUC)

	// Tier 1: public
	app.Post("/signup", authHandler.Signup)
	app.Post("/login", authHandler.Login)
	app.Get("/pet/:id", petHandler.GetByID)
	app.Get("/pet", petHandler.Search)
	app.Get("/types", petHandler.Types)

	// Tier 2: authenticated (valid bearer token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/currentuser", userHandler.CurrentUser)
	protected.Put("/pet/:id/adopt", adoptionHandler.Adopt)
	protected.Put("/pet/:id/return", adoptionHandler.Return)
	protected.Put("/pet/:id/save", adoptionHandler.Save)
	protected.Delete("/pet/:id/save", adoptionHandler.Unsave)
	protected.Get("/pet/user/:id", petHandler.ListByCarer)
	protected.Get("/saved/user/:id", adoptionHandler.ListSaved)
	protected.Put("/user/:id", authHandler.UpdateProfile)
	protected.Put("/user/:id/password", authHandler.ChangePassword)

	// Tier 3: admin only
	admin := protected.Group("/", RequireRole(entity.RoleAdmin))
	admin.Post("/pet", petHandler.Create)
	admin.Put("/pet/:id", petHandler.Update)
	admin.Get("/user", userHandler.List)
}
