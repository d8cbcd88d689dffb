package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/repository"
)

// Role claim values. RoleAdmin is derived from the distinguished admin
// username, never stored on the user row.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// RoleFor derives the role for a username: the distinguished admin
// account gets ADMIN, everyone else USER.
func RoleFor(username string) string {
	if username == repository.AdminUsername {
		return RoleAdmin
	}
	return RoleUser
}

// getUserID extracts the user_id placed on the context by the JWT
// middleware and converts it to uint64. JWT numeric claims decode as
// float64, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getUsername extracts the username claim stored by the JWT middleware.
func getUsername(c echo.Context) string {
	if v, ok := c.Get("username").(string); ok {
		return v
	}
	return ""
}
