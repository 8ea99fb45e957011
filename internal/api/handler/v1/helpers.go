package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/middleware"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/service"
)

var errMissingUserID = errors.New("user id missing from request context")

// currentUserID pulls the authenticated user's id injected by the JWT
// middleware.
func currentUserID(ctx *gin.Context) (uuid.UUID, error) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return uuid.Nil, errMissingUserID
	}

	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errMissingUserID
	}

	return userID, nil
}

func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%v is not a valid UUID", name)
	}

	return id, nil
}

func queryInt(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}

// clampPage mirrors the service-side page normalization so the response
// envelope reports the limit and offset actually served.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = service.DefaultPageLimit
	} else if limit > service.MaxPageLimit {
		limit = service.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

func queryFloat(ctx *gin.Context, name string) (float64, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%v is required", name)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%v is not a valid number", name)
	}

	return f, nil
}
