package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1/request"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1/response"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/service"
)

type ConsumptionService interface {
	LogConsumption(ctx context.Context, userID uuid.UUID, input service.LogConsumptionInput) (domain.AttendanceWithTotals, error)
}

type ConsumptionHandler struct {
	svc ConsumptionService
}

func NewConsumptionHandler(svc ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{
		svc: svc,
	}
}

// HandleLogConsumption godoc
// @Summary      Log a drink consumption
// @Description  Records one drink against the caller's attendance for the given date, creating the attendance if needed, and returns the day's updated totals.
// @Tags         consumptions
// @Produce      json
// @Param        request   body      request.LogConsumptionRequest true "request body"
// @Success      201      {object}   domain.AttendanceWithTotals
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /consumptions [post]
func (h *ConsumptionHandler) HandleLogConsumption(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	req := request.LogConsumptionRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	festivalID, err := uuid.Parse(req.FestivalID)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("festivalId is not a valid UUID")))

		return
	}

	var tentID *uuid.UUID
	if req.TentID != "" {
		id, err := uuid.Parse(req.TentID)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("tentId is not a valid UUID")))

			return
		}
		tentID = &id
	}

	attendance, err := h.svc.LogConsumption(ctx.Request.Context(), userID, service.LogConsumptionInput{
		FestivalID:     festivalID,
		Date:           req.Date,
		TentID:         tentID,
		DrinkType:      domain.DrinkType(req.DrinkType),
		DrinkName:      req.DrinkName,
		BasePriceCents: req.BasePriceCents,
		PricePaidCents: req.PricePaidCents,
		VolumeML:       req.VolumeML,
		RecordedAt:     req.RecordedAt,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateFormat) ||
			errors.Is(err, service.ErrInvalidDrinkType) ||
			errors.Is(err, service.ErrPriceBelowBase) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogConsumption -> h.svc.LogConsumption -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, attendance)
}
