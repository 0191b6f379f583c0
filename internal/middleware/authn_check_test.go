package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.winapps.timelineapp/internal/auth"
)

// The router gets nil stores on purpose: the signature check must reject
// these requests before any Redis or Postgres access, so a store touch
// would panic the test.
func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(nil, nil, secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("uid")})
	})
	return router
}

func request(t *testing.T, router *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMalformedHeaders(t *testing.T) {
	router := authTestRouter("test-secret")

	assert.Equal(t, http.StatusUnauthorized, request(t, router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(t, router, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(t, router, "Bearer ").Code)
}

func TestAuthMiddlewareRejectsUnverifiableTokens(t *testing.T) {
	router := authTestRouter("test-secret")

	assert.Equal(t, http.StatusUnauthorized, request(t, router, "Bearer not-a-token").Code)

	// A token minted under another deployment's secret never reaches the
	// session stores
	foreign, _, err := auth.MintSessionToken("other-secret", "user-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, request(t, router, "Bearer "+foreign).Code)
}
