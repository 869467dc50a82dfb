package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the subject claim stored by JWTAuth out of the Echo
// context for use in rate-limit keys. Unauthenticated requests get "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a stable string form of the authenticated user ID,
// or "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
