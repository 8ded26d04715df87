package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queuecare/internal/models"
)

func setupRouter(a *Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", a.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, ViewerFrom(c))
	})
	r.GET("/staff", a.Middleware(), RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestTokenRoundTrip(t *testing.T) {
	a := New("secret")
	token, err := a.GenerateToken(models.Viewer{ID: "nurse", IsStaff: true}, time.Hour)
	require.NoError(t, err)

	viewer, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.Viewer{ID: "nurse", IsStaff: true}, viewer)

	_, err = New("other").ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := a.GenerateToken(models.Viewer{ID: "alice"}, -time.Minute)
	require.NoError(t, err)
	_, err = a.ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := a.GenerateToken(models.Viewer{}, time.Hour)
	require.NoError(t, err)
	_, err = a.ParseToken(anonymous)
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestMiddleware(t *testing.T) {
	a := New("secret")
	r := setupRouter(a)
	patientToken, err := a.GenerateToken(models.Viewer{ID: "alice"}, time.Hour)
	require.NoError(t, err)
	staffToken, err := a.GenerateToken(models.Viewer{ID: "nurse", IsStaff: true}, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "NO_AUTH_HEADER")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"alice","is_staff":false}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff?access_token="+patientToken, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff?access_token="+staffToken, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
