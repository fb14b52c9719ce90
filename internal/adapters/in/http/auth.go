package http

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserIDHeader carries the authenticated user's id, set by the identity
// gateway in front of this service.
const UserIDHeader = "X-User-ID"

const actorKey = "actor"

// Authenticate resolves the caller from UserIDHeader. A missing, malformed or
// unknown id is rejected with 401 before any handler runs. Blocked users are
// let through so the role gate can reject them with 403.
func Authenticate(users ports.UserRepository, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			raw := strings.TrimSpace(c.Request().Header.Get(UserIDHeader))
			if raw == "" {
				return fmt.Errorf("%w: missing %s header", ErrUnauthenticated, UserIDHeader)
			}
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return fmt.Errorf("%w: malformed %s header", ErrUnauthenticated, UserIDHeader)
			}

			u, err := users.Get(c.Request().Context(), id)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return fmt.Errorf("%w: unknown user", ErrUnauthenticated)
			}
			if err != nil {
				return err
			}

			c.Set(actorKey, services.ActorFromUser(u))
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (services.Actor, error) {
	actor, ok := c.Get(actorKey).(services.Actor)
	if !ok {
		return services.Actor{}, ErrUnauthenticated
	}
	return actor, nil
}
