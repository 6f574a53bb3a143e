// Package cars exposes the catalog query engine over HTTP.
package cars

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carcatalog/internal/catalog"
)

type Handler struct {
	Engine *catalog.Engine
}

func NewHandler(engine *catalog.Engine) *Handler {
	return &Handler{Engine: engine}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cars", h.list)        // GET /api/cars
	rg.GET("/cars/:id", h.getByID) // GET /api/cars/:id
	rg.GET("/max-speed", h.maxSpeed)

	for _, route := range []string{"fuel-types", "body-styles", "engine-types", "wheel-drives", "gearboxes"} {
		attr, _ := catalog.ParseAttribute(route)
		rg.GET("/"+route, h.distinct(attr))
	}
}

func (h *Handler) list(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Engine.List(f))
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}
	rec, ok := h.Engine.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) distinct(attr catalog.Attribute) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := h.Engine.DistinctValues(attr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, values)
	}
}

func (h *Handler) maxSpeed(c *gin.Context) {
	q := catalog.MaxSpeedQuery{
		Model: optString(c, "model"),
		Brand: optString(c, "brand"),
	}
	avg, ok, err := h.Engine.MaxSpeed(q)
	if errors.Is(err, catalog.ErrInvalidQueryCombination) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "specify either model or brand, not both"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "max speed failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching cars"})
		return
	}
	c.JSON(http.StatusOK, avg)
}
