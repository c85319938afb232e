// Package http wires the gin engine: middleware stack, route tree and
// handler dispatch.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naplink/internal/interfaces/http/handlers"
	"naplink/internal/interfaces/http/middleware"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/logger"
)

// Router holds the handlers and middleware of the HTTP surface.
type Router struct {
	napHandler        *handlers.NAPHandler
	connectionHandler *handlers.ConnectionHandler
	clientHandler     *handlers.ClientHandler
	planHandler       *handlers.PlanHandler
	auditHandler      *handlers.AuditHandler
	authMiddleware    *middleware.AuthMiddleware
	allowedOrigins    []string
	environment       string
	logger            logger.Interface
}

func NewRouter(
	napHandler *handlers.NAPHandler,
	connectionHandler *handlers.ConnectionHandler,
	clientHandler *handlers.ClientHandler,
	planHandler *handlers.PlanHandler,
	auditHandler *handlers.AuditHandler,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
	environment string,
) *Router {
	return &Router{
		napHandler:        napHandler,
		connectionHandler: connectionHandler,
		clientHandler:     clientHandler,
		planHandler:       planHandler,
		auditHandler:      auditHandler,
		authMiddleware:    authMiddleware,
		allowedOrigins:    allowedOrigins,
		environment:       environment,
		logger:            logger.NewLogger(),
	}
}

// Setup builds the gin engine with the full middleware stack and route tree.
func (r *Router) Setup() *gin.Engine {
	if r.environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(r.logger))
	engine.Use(middleware.CORS(r.allowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// Read routes carry the actor when present but never require it.
	reads := api.Group("")
	reads.Use(r.authMiddleware.OptionalAuth())
	{
		reads.GET("/naps", r.napHandler.ListNAPs)
		reads.GET("/naps/:id", r.napHandler.GetNAP)
		reads.GET("/naps/:id/ports", r.napHandler.ListPorts)
		reads.GET("/connections", r.connectionHandler.ListConnections)
		reads.GET("/connections/:id", r.connectionHandler.GetConnection)
		reads.GET("/clients", r.clientHandler.ListClients)
		reads.GET("/clients/:id", r.clientHandler.GetClient)
		reads.GET("/plans", r.planHandler.ListPlans)
		reads.GET("/audit/records", r.auditHandler.QueryRecords)
		reads.GET("/audit/stats", r.auditHandler.Stats)
		reads.GET("/audit/tables", r.auditHandler.TrackedTables)
	}

	// Mutations require an authenticated actor so the ledger can attribute
	// every change.
	writes := api.Group("")
	writes.Use(r.authMiddleware.RequireAuth())
	{
		writes.POST("/naps", r.napHandler.CreateNAP)
		writes.PUT("/naps/:id/maintenance", r.napHandler.SetMaintenance)
		writes.POST("/naps/:id/backfill", r.napHandler.BackfillPorts)
		writes.POST("/naps/scan", r.napHandler.ScanCapacity)

		writes.POST("/connections", r.connectionHandler.Allocate)
		writes.POST("/connections/:id/transition", r.connectionHandler.Transition)
		writes.POST("/ports/:id/release", r.connectionHandler.ReleasePort)

		writes.DELETE("/clients/:id", r.clientHandler.DeleteClient)

		writes.POST("/plans", r.planHandler.CreatePlan)
	}

	return engine
}
