package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"brewpair/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter(secure bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Session(secure), func(c *gin.Context) {
		c.String(http.StatusOK, utils.CurrentSessionID(c))
	})
	return r
}

func sidCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestSessionCookieFollowsScheme(t *testing.T) {
	for _, secure := range []bool{false, true} {
		w := httptest.NewRecorder()
		sessionRouter(secure).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		sid := sidCookie(w)
		require.NotNil(t, sid)
		assert.Equal(t, secure, sid.Secure)
		assert.True(t, sid.HttpOnly)
		assert.Equal(t, sid.Value, w.Body.String())
	}
}

func TestSessionPrefersHeader(t *testing.T) {
	r := sessionRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "from-header")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "from-header", w.Body.String())
	assert.Nil(t, sidCookie(w))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "from-cookie", w.Body.String())
}
