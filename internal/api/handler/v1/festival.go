package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1/response"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/service"
)

type FestivalService interface {
	List(ctx context.Context) ([]domain.Festival, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Festival, error)
	ListTents(ctx context.Context, festivalID uuid.UUID) ([]domain.Tent, error)
}

type FestivalHandler struct {
	svc FestivalService
}

func NewFestivalHandler(svc FestivalService) *FestivalHandler {
	return &FestivalHandler{
		svc: svc,
	}
}

// HandleListFestivals godoc
// @Summary      List festivals
// @Tags         festivals
// @Produce      json
// @Success      200 {array}  domain.Festival
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /festivals [get]
func (h *FestivalHandler) HandleListFestivals(ctx *gin.Context) {
	festivals, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListFestivals -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, festivals)
}

// HandleGetFestival godoc
// @Summary      Get one festival
// @Tags         festivals
// @Produce      json
// @Param        festivalID   path      string true "festival UUID"
// @Success      200 {object} domain.Festival
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /festivals/{festivalID} [get]
func (h *FestivalHandler) HandleGetFestival(ctx *gin.Context) {
	festivalID, err := parseUUIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	festival, err := h.svc.GetByID(ctx.Request.Context(), festivalID)
	if err != nil {
		if errors.Is(err, service.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFestivalNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetFestival -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, festival)
}

// HandleListTents godoc
// @Summary      List a festival's tents
// @Tags         festivals
// @Produce      json
// @Param        festivalID   path      string true "festival UUID"
// @Success      200 {array}  domain.Tent
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /festivals/{festivalID}/tents [get]
func (h *FestivalHandler) HandleListTents(ctx *gin.Context) {
	festivalID, err := parseUUIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	tents, err := h.svc.ListTents(ctx.Request.Context(), festivalID)
	if err != nil {
		if errors.Is(err, service.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFestivalNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleListTents -> h.svc.ListTents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tents)
}
