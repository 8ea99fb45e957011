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

type AttendanceService interface {
	List(ctx context.Context, userID, festivalID uuid.UUID, limit, offset int) ([]domain.AttendanceWithTotals, int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type AttendanceHandler struct {
	svc AttendanceService
}

func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		svc: svc,
	}
}

// HandleListAttendances godoc
// @Summary      List the caller's attendances with per-day totals
// @Tags         attendances
// @Produce      json
// @Param        festivalId   query     string true  "festival UUID"
// @Param        limit        query     int    false "page size (default 20, max 100)"
// @Param        offset       query     int    false "page offset"
// @Success      200 {object} response.Paginated[domain.AttendanceWithTotals]
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /attendances [get]
func (h *AttendanceHandler) HandleListAttendances(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	festivalID, err := uuid.Parse(ctx.Query("festivalId"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("festivalId is not a valid UUID")))

		return
	}

	limit := queryInt(ctx, "limit", 0)
	offset := queryInt(ctx, "offset", 0)

	attendances, total, err := h.svc.List(ctx.Request.Context(), userID, festivalID, limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAttendances -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	limit, offset = clampPage(limit, offset)

	ctx.JSON(http.StatusOK, response.Paginated[domain.AttendanceWithTotals]{
		Data:   attendances,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleDeleteAttendance godoc
// @Summary      Delete an attendance and its consumptions
// @Tags         attendances
// @Produce      json
// @Param        attendanceID   path      string true "attendance UUID"
// @Success      200 {object} response.DeleteResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /attendances/{attendanceID} [delete]
func (h *AttendanceHandler) HandleDeleteAttendance(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	attendanceID, err := parseUUIDParam(ctx, "attendanceID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), attendanceID, userID); err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAttendanceNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteAttendance -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.DeleteResponse{
		Success: true,
		Message: "attendance deleted",
	})
}
