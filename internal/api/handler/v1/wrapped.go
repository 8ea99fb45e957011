package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1/response"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

type WrappedService interface {
	GetWrapped(ctx context.Context, userID, festivalID uuid.UUID) (domain.Wrapped, error)
}

type WrappedHandler struct {
	svc WrappedService
}

func NewWrappedHandler(svc WrappedService) *WrappedHandler {
	return &WrappedHandler{
		svc: svc,
	}
}

// HandleGetWrapped godoc
// @Summary      Get the caller's year-in-review stats for a festival
// @Tags         wrapped
// @Produce      json
// @Param        festivalID   path      string true "festival UUID"
// @Success      200 {object} domain.Wrapped
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /festivals/{festivalID}/wrapped [get]
func (h *WrappedHandler) HandleGetWrapped(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	festivalID, err := parseUUIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	wrapped, err := h.svc.GetWrapped(ctx.Request.Context(), userID, festivalID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetWrapped -> h.svc.GetWrapped -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, wrapped)
}
