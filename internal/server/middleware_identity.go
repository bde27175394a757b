package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/WolfDWyc/obscure-sorrows-browser/internal/errors"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/identity"
)

const (
	identityCookieName = "user_id"
	// One year. The token is the whole identity, so losing the cookie
	// orphans the user's ratings.
	identityCookieMaxAge = 31536000

	userTokenContextKey = "userToken"
)

// withIdentity resolves the caller's identity token, minting and setting a
// fresh cookie when the request carries none.
func (s *Server) withIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var token string
		if cookie, err := c.Cookie(identityCookieName); err == nil {
			token = cookie.Value
		}

		res := identity.Resolve(token)
		if res.Minted {
			c.SetCookie(s.identityCookie(res.Token))
		}

		c.Set(userTokenContextKey, res.Token)
		return next(c)
	}
}

// requireIdentity rejects requests without an existing identity cookie.
// Used for destructive operations where minting a fresh identity would
// silently target nothing.
func (s *Server) requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(identityCookieName)
		if err != nil || cookie.Value == "" {
			return apperrors.UnauthorizedError("no user identity")
		}

		res := identity.Resolve(cookie.Value)
		if res.Minted {
			// Placeholder tokens count as no identity
			return apperrors.UnauthorizedError("no user identity")
		}

		c.Set(userTokenContextKey, res.Token)
		return next(c)
	}
}

func (s *Server) identityCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     identityCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   identityCookieMaxAge,
		HttpOnly: true,
		Secure:   s.config.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}
}

// userToken returns the identity token resolved by the middleware, or the
// empty string on routes that run without it.
func userToken(c echo.Context) string {
	token, _ := c.Get(userTokenContextKey).(string)
	return token
}
