package webhook

import (
	"leadqualify_backend/internal/events"
	apphttp "leadqualify_backend/internal/http"
	"leadqualify_backend/internal/leads/convo"
	"leadqualify_backend/platform/logger"
	"leadqualify_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	repo    *Repository
	service *Service
}

// NewModule creates and initializes the webhook module with all its dependencies.
func NewModule(pool *pgxpool.Pool, store Store, strategy convo.Strategy, messenger Messenger, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	service := NewService(store, strategy, messenger, bus, log)
	handler := NewHandler(service, repo, val)

	return &Module{
		handler: handler,
		repo:    repo,
		service: service,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// AdminAuth returns the API key middleware guarding the admin surface.
func (m *Module) AdminAuth() gin.HandlerFunc {
	return APIKeyAuthMiddleware(m.repo)
}

// RegisterRoutes mounts webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public inbound endpoint. No auth (the gateway cannot sign requests),
	// but rate limited per IP.
	inbound := ctx.V1.Group("/webhook")
	if ctx.WebhookRateLimiter != nil {
		inbound.Use(ctx.WebhookRateLimiter.RateLimit())
	}
	inbound.POST("/whatsapp", m.handler.HandleInbound)

	// Admin API key management.
	keys := ctx.Admin.Group("/keys")
	keys.POST("", m.handler.HandleCreateAPIKey)
	keys.GET("", m.handler.HandleListAPIKeys)
	keys.DELETE("/:keyId", m.handler.HandleRevokeAPIKey)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
