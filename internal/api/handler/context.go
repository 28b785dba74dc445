package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrust/card-ledger/internal/api/middleware"
	"github.com/fintrust/card-ledger/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call:
//   - the identity must be present (presence proves the middleware ran).
//   - it must carry a non-empty user id and at least one role; a token that
//     verified but resolved to nothing usable is rejected with 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if id.UserID == "" || len(id.Roles) == 0 {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
	}
	return id, nil
}
