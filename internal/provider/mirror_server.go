package provider

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RegisterMirrorRoutes serves a mirror in the provider's own API shape, so an
// HTTPSource can be pointed at it instead of the real provider.
func RegisterMirrorRoutes(rg *gin.RouterGroup, m *MirrorSource) {
	rg.GET("/brands", func(c *gin.Context) {
		brands, err := m.ListBrands(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list brands failed"})
			return
		}
		c.JSON(http.StatusOK, brands)
	})

	rg.GET("/cars", func(c *gin.Context) {
		cars, err := m.ListCars(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list cars failed"})
			return
		}
		c.JSON(http.StatusOK, cars)
	})

	rg.GET("/cars/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		spec, err := m.GetSpec(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get spec failed"})
			return
		}
		c.JSON(http.StatusOK, spec)
	})
}
