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

type LeaderboardService interface {
	GetGlobal(ctx context.Context, festivalID uuid.UUID, sortBy string, limit, offset int) ([]domain.LeaderboardEntry, int, error)
	GetGroup(ctx context.Context, groupID, userID uuid.UUID, sortBy string, limit, offset int) ([]domain.LeaderboardEntry, int, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetGlobalLeaderboard godoc
// @Summary      Get the festival-wide leaderboard
// @Description  Ranks every participating user by the sortBy criteria (days_attended, total_beers or avg_beers; defaults to total_beers).
// @Tags         leaderboard
// @Produce      json
// @Param        festivalId   query     string true  "festival UUID"
// @Param        sortBy       query     string false "days_attended | total_beers | avg_beers"
// @Param        limit        query     int    false "page size (default 20, max 100)"
// @Param        offset       query     int    false "page offset"
// @Success      200 {object} response.Paginated[domain.LeaderboardEntry]
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) HandleGetGlobalLeaderboard(ctx *gin.Context) {
	festivalID, err := uuid.Parse(ctx.Query("festivalId"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("festivalId is not a valid UUID")))

		return
	}

	limit := queryInt(ctx, "limit", 0)
	offset := queryInt(ctx, "offset", 0)

	entries, total, err := h.svc.GetGlobal(ctx.Request.Context(), festivalID, ctx.Query("sortBy"), limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGlobalLeaderboard -> h.svc.GetGlobal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	renderLeaderboardPage(ctx, entries, total, limit, offset)
}

// HandleGetGroupLeaderboard godoc
// @Summary      Get a group's leaderboard
// @Tags         leaderboard
// @Produce      json
// @Param        groupID   path      string true  "group UUID"
// @Param        sortBy    query     string false "days_attended | total_beers | avg_beers"
// @Param        limit     query     int    false "page size (default 20, max 100)"
// @Param        offset    query     int    false "page offset"
// @Success      200 {object} response.Paginated[domain.LeaderboardEntry]
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /groups/{groupID}/leaderboard [get]
func (h *LeaderboardHandler) HandleGetGroupLeaderboard(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	groupID, err := parseUUIDParam(ctx, "groupID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	limit := queryInt(ctx, "limit", 0)
	offset := queryInt(ctx, "offset", 0)

	entries, total, err := h.svc.GetGroup(ctx.Request.Context(), groupID, userID, ctx.Query("sortBy"), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrNotGroupMember) {
			response.RenderErr(ctx, response.ErrForbidden(service.ErrNotGroupMember))

			return
		}

		err = fmt.Errorf("v1.HandleGetGroupLeaderboard -> h.svc.GetGroup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	renderLeaderboardPage(ctx, entries, total, limit, offset)
}

func renderLeaderboardPage(ctx *gin.Context, entries []domain.LeaderboardEntry, total, limit, offset int) {
	limit, offset = clampPage(limit, offset)

	ctx.JSON(http.StatusOK, response.Paginated[domain.LeaderboardEntry]{
		Data:   entries,
		Total:  int64(total),
		Limit:  limit,
		Offset: offset,
	})
}
