package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAuthCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	opts := Options{FrontendURL: "https://planets.example:8443", Secure: true, SameSite: "strict"}

	SetAuthCookie(rec, opts, "tok", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, AuthCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "planets.example", c.Domain)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.InDelta(t, 3600, c.MaxAge, 5)
}

func TestClearAuthCookie(t *testing.T) {
	rec := httptest.NewRecorder()

	ClearAuthCookie(rec, Options{FrontendURL: "http://localhost:3000"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Empty(t, cookies[0].Domain)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "", extractDomain("http://127.0.0.1:3000"))
	assert.Equal(t, "", extractDomain("::not a url"))
	assert.Equal(t, "app.planets.example", extractDomain("https://app.planets.example"))
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteNoneMode, parseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("lax"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
}
