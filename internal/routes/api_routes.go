package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wecelebrate/console/internal/api"
	"wecelebrate/console/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes. Every route requires
// authentication; anything that changes state also requires the admin role.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, authMiddleware func(http.Handler) http.Handler) {
	svc := deps.Services

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(authMiddleware)

		v1.Post("/auth/token", api.IssueTokenHandler(svc.Tokens, deps.MaxTokenTTL))
		v1.Post("/auth/revoke", api.RevokeTokenHandler(svc.Tokens))

		v1.Route("/clients", func(clients chi.Router) {
			// Validation never persists, so viewers may use it.
			clients.Post("/validate", api.ValidateClientHandler(svc.Clients))
			clients.Post("/validate-field", api.ValidateFieldHandler(svc.Clients))
			clients.Get("/validation-rules", api.ValidationRulesHandler())

			clients.Get("/", api.ListClientsHandler(svc.Clients))
			clients.Get("/{clientID}", api.GetClientHandler(svc.Clients))
			clients.Get("/{clientID}/sites", api.ListSitesHandler(svc.Sites))
			clients.Get("/{clientID}/mapping-rules", api.ListMappingRulesHandler(svc.MappingRules))
			clients.Post("/{clientID}/mapping-rules/select-site", api.SelectSiteHandler(svc.MappingRules))
			clients.Post("/{clientID}/mapping-rules/test", api.TestMappingRulesHandler(svc.MappingRules))
			clients.Post("/{clientID}/assignments", api.AssignEmployeesHandler(svc.MappingRules))

			// Admin-only group
			clients.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Post("/", api.CreateClientHandler(svc.Clients))
				admin.Put("/{clientID}", api.UpdateClientHandler(svc.Clients))
				admin.Delete("/{clientID}", api.DeleteClientHandler(svc.Clients))

				admin.Post("/{clientID}/sites", api.CreateSiteHandler(svc.Sites))
				admin.Delete("/{clientID}/sites/{siteID}", api.DeleteSiteHandler(svc.Sites))

				admin.Post("/{clientID}/mapping-rules", api.CreateMappingRuleHandler(svc.MappingRules))
				admin.Put("/{clientID}/mapping-rules/{ruleID}", api.UpdateMappingRuleHandler(svc.MappingRules))
				admin.Delete("/{clientID}/mapping-rules/{ruleID}", api.DeleteMappingRuleHandler(svc.MappingRules))
			})
		})
	})
}
