package ratings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"movierec/internal/auth"
	"movierec/internal/catalog"
)

// Handler expone los endpoints HTTP de ratings.
type Handler struct {
	svc Service
}

// NewHandler crea el handler de ratings.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registra los endpoints sobre el grupo indicado (requiere
// el middleware de auth montado en el grupo).
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("", h.submit)
	g.GET("", h.list)
}

type submitRequest struct {
	Title string  `json:"title" binding:"required"`
	Value float64 `json:"value" binding:"required,min=0.5,max=5"`
}

func (h *Handler) submit(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sesión requerida"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido", "details": err.Error()})
		return
	}

	created, err := h.svc.SubmitByTitle(c.Request.Context(), userID, req.Title, req.Value)
	if err != nil {
		if errors.Is(err, catalog.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo guardar el rating"})
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"created": true})
		return
	}
	// el par ya existía: el valor original se conserva
	c.JSON(http.StatusOK, gin.H{"created": false})
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sesión requerida"})
		return
	}

	rated, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron leer los ratings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": rated})
}
