package cookies

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionTokenName is the cookie carrying the session token.
const SessionTokenName = "token"

type Settings struct {
	Secure bool
	TTL    time.Duration
}

// SetSessionCookie stores token in an HTTP-only, same-site strict cookie
// that lives as long as the token.
func SetSessionCookie(c *fiber.Ctx, token string, s Settings) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionTokenName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		MaxAge:   int(s.TTL.Seconds()),
		Expires:  time.Now().Add(s.TTL),
	})
}

// ClearSessionCookie overwrites the session cookie with an already expired
// empty one.
func ClearSessionCookie(c *fiber.Ctx, s Settings) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionTokenName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Unix(0, 0),
	})
}

func SessionToken(c *fiber.Ctx) string {
	return c.Cookies(SessionTokenName)
}
