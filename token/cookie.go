package token

import "net/http"

// CookieName is the name of the session cookie.
const CookieName = "jwt"

// NewAuthCookie wraps a signed token as a session cookie. No Max-Age is
// set: the cookie lives for the browser session and the token's own exp
// claim bounds its validity.
func NewAuthCookie(tokenStr string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    tokenStr,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearAuthCookie returns a cookie that instructs the client to drop
// the session cookie.
func ClearAuthCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}
