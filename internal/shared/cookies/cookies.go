package cookies

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// AuthCookieName carries the write token for browser clients.
const AuthCookieName = "auth_token"

type Options struct {
	FrontendURL string
	Secure      bool
	SameSite    string
}

// SetAuthCookie stores token in an HttpOnly cookie that expires with it.
func SetAuthCookie(w http.ResponseWriter, opts Options, token string, expiresAt time.Time) {
	cookie := createAuthCookie(opts)
	cookie.Value = token
	cookie.Expires = expiresAt
	cookie.MaxAge = max(int(time.Until(expiresAt).Seconds()), 1)

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter, opts Options) {
	cookie := createAuthCookie(opts)
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func createAuthCookie(opts Options) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Path:     "/",
		Domain:   extractDomain(opts.FrontendURL),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: parseSameSite(opts.SameSite),
	}
}

// extractDomain leaves local hosts host-only.
func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := parsedURL.Hostname()
	if host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}

	return host
}

func parseSameSite(sameSiteStr string) http.SameSite {
	switch sameSiteStr {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
