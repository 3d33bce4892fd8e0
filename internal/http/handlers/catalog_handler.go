// README: Catalog handlers for reading, overriding and resetting the
// effective TSV bundle.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carcalc/internal/modules/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

type catalogResponse struct {
	Source catalog.Source `json:"source"`
	Bundle catalog.Bundle `json:"bundle"`
}

func (h *CatalogHandler) Get(c *gin.Context) {
	bundle, source, err := h.catalog.Effective(c.Request.Context())
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, catalogResponse{Source: source, Bundle: bundle})
}

func (h *CatalogHandler) Put(c *gin.Context) {
	var bundle catalog.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.catalog.Save(c.Request.Context(), bundle); err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"source": catalog.SourceOverride})
}

func (h *CatalogHandler) Reset(c *gin.Context) {
	if err := h.catalog.Reset(c.Request.Context()); err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"source": catalog.SourceDefault})
}
