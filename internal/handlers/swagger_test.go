package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/route66/trip-service/docs"
)

// TestSwaggerUIServesDoc mounts the swagger handler the way the server does and
// checks that the registered document is served.
func TestSwaggerUIServesDoc(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	w := get(router, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/trips/plan")

	w = get(router, "/swagger/index.html")
	assert.Equal(t, http.StatusOK, w.Code)
}
