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

type GroupService interface {
	Create(ctx context.Context, userID, festivalID uuid.UUID, name string) (domain.Group, error)
	Join(ctx context.Context, userID uuid.UUID, inviteToken string) (domain.Group, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	ListMembers(ctx context.Context, groupID, userID uuid.UUID) ([]domain.GroupMember, error)
}

type GroupHandler struct {
	svc GroupService
}

func NewGroupHandler(svc GroupService) *GroupHandler {
	return &GroupHandler{
		svc: svc,
	}
}

// HandleCreateGroup godoc
// @Summary      Create a group
// @Description  Creates a group with a fresh invite token. The creator becomes the first member.
// @Tags         groups
// @Produce      json
// @Param        request   body      request.CreateGroupRequest true "request body"
// @Success      201      {object}   domain.Group
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups [post]
func (h *GroupHandler) HandleCreateGroup(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	req := request.CreateGroupRequest{}
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

	group, err := h.svc.Create(ctx.Request.Context(), userID, festivalID, req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateGroup -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, group)
}

// HandleJoinGroup godoc
// @Summary      Join a group via invite token
// @Tags         groups
// @Produce      json
// @Param        request   body      request.JoinGroupRequest true "request body"
// @Success      200      {object}   domain.Group
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups/join [post]
func (h *GroupHandler) HandleJoinGroup(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	req := request.JoinGroupRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	group, err := h.svc.Join(ctx.Request.Context(), userID, req.InviteToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGroupNotFound))
		case errors.Is(err, service.ErrAlreadyMember):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyMember))
		default:
			err = fmt.Errorf("v1.HandleJoinGroup -> h.svc.Join -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, group)
}

// HandleListMyGroups godoc
// @Summary      List the caller's groups
// @Tags         groups
// @Produce      json
// @Success      200 {array}  domain.Group
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /groups [get]
func (h *GroupHandler) HandleListMyGroups(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	groups, err := h.svc.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyGroups -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, groups)
}

// HandleListGroupMembers godoc
// @Summary      List a group's members
// @Tags         groups
// @Produce      json
// @Param        groupID   path      string true "group UUID"
// @Success      200 {array}  domain.GroupMember
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /groups/{groupID}/members [get]
func (h *GroupHandler) HandleListGroupMembers(ctx *gin.Context) {
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

	members, err := h.svc.ListMembers(ctx.Request.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotGroupMember) {
			response.RenderErr(ctx, response.ErrForbidden(service.ErrNotGroupMember))

			return
		}

		err = fmt.Errorf("v1.HandleListGroupMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, members)
}
