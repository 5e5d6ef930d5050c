package httpserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pixibai/internal/appstate"
	"pixibai/internal/cart"
	"pixibai/internal/catalog"
	"pixibai/internal/session"
)

// AssistantClient is the slice of the AI collaborator the handlers need.
type AssistantClient interface {
	Chat(ctx context.Context, message string) (string, error)
	EditImage(ctx context.Context, imageData []byte, mimeType, instruction string) ([]byte, string, error)
}

// Deps carries the wired collaborators for the route handlers.
type Deps struct {
	Catalog   *catalog.Catalog
	Sessions  *session.Store
	Cart      *cart.Store
	App       *appstate.Container
	Assistant AssistantClient
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(allowedOrigins))

	router.GET("/healthz", healthHandler)

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)

		api.POST("/sessions", h.createSession)
		api.GET("/sessions/:id", h.getSession)
		api.POST("/sessions/:id/photos", h.addPhotos)
		api.PATCH("/sessions/:id/photos/:photoId", h.updateCaption)
		api.POST("/sessions/:id/photos/:photoId/cover", h.setCover)
		api.POST("/sessions/:id/photos/:photoId/edit", h.editPhoto)
		api.DELETE("/sessions/:id/photos/:photoId", h.removePhoto)
		api.PATCH("/sessions/:id/options", h.setOptions)
		api.PUT("/sessions/:id/giftcard", h.setGiftCard)
		api.GET("/sessions/:id/quote", h.quoteSession)
		api.POST("/sessions/:id/finalize", h.finalizeSession)

		api.GET("/cart", h.getCart)
		api.DELETE("/cart/items/:id", h.removeCartItem)

		api.GET("/view", h.getView)
		api.POST("/view", h.navigate)
		api.POST("/view/product", h.selectProduct)
		api.POST("/restart", h.restart)

		api.GET("/checkout", h.getCheckout)
		api.POST("/checkout", h.placeOrder)

		api.POST("/chat", h.chat)
	}

	return router, nil
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
