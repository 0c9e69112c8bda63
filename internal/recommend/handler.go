package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"movierec/internal/auth"
	"movierec/internal/catalog"
	"movierec/internal/engine"
)

// Handler expone los endpoints HTTP de recomendación.
type Handler struct {
	svc Service
}

// NewHandler crea el handler de recomendaciones.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registra los endpoints sobre el grupo indicado.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("", h.recommend)
	g.GET("/history", h.history)
}

// RegisterPublicRoutes registra los endpoints que no requieren sesión.
func (h *Handler) RegisterPublicRoutes(g *gin.RouterGroup) {
	g.GET("/resolve", h.resolve)
}

type recommendRequest struct {
	Seeds []TitleSeed `json:"seeds" binding:"required,min=1,dive"`
	K     int         `json:"k"`
}

func (h *Handler) recommend(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sesión requerida"})
		return
	}

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido", "details": err.Error()})
		return
	}

	recs, err := h.svc.RecommendByTitles(c.Request.Context(), userID, req.Seeds, req.K)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTitleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, engine.ErrModelNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "el modelo todavía se está construyendo"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al calcular recomendaciones"})
		}
		return
	}

	// lista vacía es una respuesta válida con 200
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (h *Handler) history(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sesión requerida"})
		return
	}

	entries, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo leer el historial"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *Handler) resolve(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falta el parámetro title"})
		return
	}

	rec, err := h.svc.VerifyTitle(title)
	if err != nil {
		if errors.Is(err, catalog.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error al resolver el título"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
