// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"carcalc/internal/http/handlers"
	"carcalc/internal/http/middleware"
	"carcalc/internal/modules/catalog"
	"carcalc/internal/modules/quote"
)

func NewRouter(quoteSvc *quote.Service, catalogSvc *catalog.Service, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))

	quoteHandler := handlers.NewQuoteHandler(quoteSvc)
	r.POST("/api/quote", quoteHandler.Create)

	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	r.GET("/api/catalog", catalogHandler.Get)
	r.PUT("/api/catalog", catalogHandler.Put)
	r.POST("/api/catalog/reset", catalogHandler.Reset)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
