package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"adsbuilder/internal/application/auth"
	buildService "adsbuilder/internal/application/build"
	"adsbuilder/internal/delivery/http/handler"
	"adsbuilder/internal/delivery/http/middleware"
	"adsbuilder/internal/domain/user"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth     *handler.AuthHandler
	Build    *handler.BuildHandler
	Artifact *handler.ArtifactHandler
}

// Setup configures all routes for the application
func Setup(handlers Handlers, authService auth.Service, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		middleware.RequestLogger(logger),
		chimw.Recoverer,
		middleware.CORS(allowedOrigins),
	)

	authRequired := middleware.Auth(authService)
	canEdit := middleware.RequireRole(user.RoleAdmin, user.RoleUser)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		handler.SendSuccess(w, "ok", nil)
	})

	// ==================
	// Auth routes
	// ==================
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.Auth.Register)
		r.Post("/login", handlers.Auth.Login)
		r.With(authRequired).Post("/logout", handlers.Auth.Logout)
		r.With(authRequired).Get("/me", handlers.Auth.Me)
	})

	// ==================
	// Build routes (protected)
	// ==================
	b := handlers.Build
	r.Route("/api/builds", func(r chi.Router) {
		r.Use(authRequired)

		r.Get("/", b.List)
		r.With(canEdit).Post("/", b.Create)
		r.With(canEdit).Post("/import", b.Import)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", b.Get)
			r.Get("/json", b.DownloadJSON)
			r.Get("/csv", b.DownloadCSV)

			r.Group(func(r chi.Router) {
				r.Use(canEdit)

				r.Put("/", b.Replace)
				r.Delete("/", b.Delete)
				r.Post("/publish", b.Publish)
				r.Post("/edit", b.Edit)

				r.Post("/campaigns", b.EditRoute(buildService.ActionAddCampaign))
				r.Route("/campaigns/{ci}", func(r chi.Router) {
					r.Delete("/", b.EditRoute(buildService.ActionRemoveCampaign))
					r.Post("/duplicate", b.EditRoute(buildService.ActionDuplicateCampaign))

					r.Post("/extensions/{kind}", b.EditRoute(buildService.ActionAddExtension))
					r.Delete("/extensions/{kind}/{item}", b.EditRoute(buildService.ActionRemoveExtension))

					r.Post("/adgroups", b.EditRoute(buildService.ActionAddAdGroup))
					r.Route("/adgroups/{ai}", func(r chi.Router) {
						r.Delete("/", b.EditRoute(buildService.ActionRemoveAdGroup))
						r.Post("/duplicate", b.EditRoute(buildService.ActionDuplicateAdGroup))
						r.Post("/sitelinks", b.EditRoute(buildService.ActionAddSitelink))
						r.Delete("/sitelinks/{item}", b.EditRoute(buildService.ActionRemoveSitelink))
					})
				})
			})
		})
	})

	// ==================
	// Artifact routes (protected)
	// ==================
	r.Route("/api/artifacts", func(r chi.Router) {
		r.Use(authRequired)

		r.Get("/", handlers.Artifact.List)
		r.Get("/stats", handlers.Artifact.Stats)
		r.Get("/download/*", handlers.Artifact.Download)
		r.With(canEdit).Delete("/*", handlers.Artifact.Delete)
	})

	return r
}
