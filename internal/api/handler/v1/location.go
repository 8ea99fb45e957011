package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1/request"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/api/handler/v1/response"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/service"
)

type LocationService interface {
	StartSession(ctx context.Context, userID, festivalID uuid.UUID, durationMinutes int, initialLocation *service.LocationUpdateInput) (domain.LocationSession, error)
	StopSession(ctx context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error)
	UpdateLocation(ctx context.Context, sessionID, userID uuid.UUID, input service.LocationUpdateInput) error
	GetNearbyMembers(ctx context.Context, userID, festivalID uuid.UUID, latitude, longitude, radiusMeters float64, groupID *uuid.UUID) ([]domain.NearbyMember, error)
}

type LocationHandler struct {
	svc LocationService
}

func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{
		svc: svc,
	}
}

func toUpdateInput(u request.LocationUpdate) service.LocationUpdateInput {
	input := service.LocationUpdateInput{
		Latitude:  *u.Latitude,
		Longitude: *u.Longitude,
		Accuracy:  u.Accuracy,
	}
	if u.Timestamp != nil {
		input.Timestamp = *u.Timestamp
	} else {
		input.Timestamp = time.Now()
	}

	return input
}

// HandleStartSession godoc
// @Summary      Start a location sharing session
// @Tags         location
// @Produce      json
// @Param        request   body      request.StartSessionRequest true "request body"
// @Success      201      {object}   response.SessionResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /location/sessions [post]
func (h *LocationHandler) HandleStartSession(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	req := request.StartSessionRequest{}
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

	var initial *service.LocationUpdateInput
	if req.InitialLocation != nil {
		input := toUpdateInput(*req.InitialLocation)
		initial = &input
	}

	session, err := h.svc.StartSession(ctx.Request.Context(), userID, festivalID, req.DurationMinutes, initial)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActiveSessionExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrActiveSessionExists))
		case errors.Is(err, service.ErrInvalidDuration), errors.Is(err, service.ErrInvalidCoordinates):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleStartSession -> h.svc.StartSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.SessionResponse{
		Session: session,
	})
}

// HandleStopSession godoc
// @Summary      Stop an owned location sharing session
// @Tags         location
// @Produce      json
// @Param        sessionID   path      string true "session UUID"
// @Success      200 {object} response.StopSessionResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /location/sessions/{sessionID} [delete]
func (h *LocationHandler) HandleStopSession(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	sessionID, err := parseUUIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.StopSession(ctx.Request.Context(), sessionID, userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleStopSession -> h.svc.StopSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StopSessionResponse{
		Success: true,
		Session: session,
	})
}

// HandleUpdateLocation godoc
// @Summary      Append a GPS sample to an active session
// @Tags         location
// @Produce      json
// @Param        sessionID   path      string                        true "session UUID"
// @Param        request     body      request.UpdateLocationRequest true "request body"
// @Success      200 {object} response.UpdateLocationResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /location/sessions/{sessionID} [put]
func (h *LocationHandler) HandleUpdateLocation(ctx *gin.Context) {
	userID, err := currentUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	sessionID, err := parseUUIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateLocationRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err = h.svc.UpdateLocation(ctx.Request.Context(), sessionID, userID, toUpdateInput(req.Location))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))
		case errors.Is(err, service.ErrInvalidCoordinates):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateLocation -> h.svc.UpdateLocation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.UpdateLocationResponse{
		Success: true,
	})
}

// HandleGetNearbyMembers godoc
// @Summary      Find group mates sharing their location nearby
// @Description  Returns members of the caller's groups with an active session within the radius, sorted by distance. The caller is never included.
// @Tags         location
// @Produce      json
// @Param        festivalId     query     string  true  "festival UUID"
// @Param        latitude       query     number  true  "caller latitude"
// @Param        longitude      query     number  true  "caller longitude"
// @Param        radiusMeters   query     number  false "search radius (default 500)"
// @Param        groupId        query     string  false "restrict to one group"
// @Success      200 {object} response.NearbyResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /location/nearby [get]
func (h *LocationHandler) HandleGetNearbyMembers(ctx *gin.Context) {
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

	latitude, err := queryFloat(ctx, "latitude")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	longitude, err := queryFloat(ctx, "longitude")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var radiusMeters float64
	if raw := ctx.Query("radiusMeters"); raw != "" {
		if radiusMeters, err = queryFloat(ctx, "radiusMeters"); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
	}

	var groupID *uuid.UUID
	if raw := ctx.Query("groupId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("groupId is not a valid UUID")))

			return
		}
		groupID = &id
	}

	members, err := h.svc.GetNearbyMembers(ctx.Request.Context(), userID, festivalID, latitude, longitude, radiusMeters, groupID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCoordinates), errors.Is(err, service.ErrInvalidRadius):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleGetNearbyMembers -> h.svc.GetNearbyMembers -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	if radiusMeters == 0 {
		radiusMeters = service.DefaultRadiusMeters
	}

	ctx.JSON(http.StatusOK, response.NearbyResponse{
		Members: members,
		UserLocation: response.Coordinates{
			Latitude:  latitude,
			Longitude: longitude,
		},
		RadiusMeters: radiusMeters,
	})
}
