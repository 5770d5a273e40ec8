package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/core/ports"
)

type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List handles GET /api/rooms.
//
// @Summary      Browse the room catalog
// @Tags         rooms
// @Produce      json
// @Param        search     query     string   false  "Matches name, type or number"
// @Param        type       query     string   false  "Room type, or all"
// @Param        minPrice   query     number   false  "Inclusive lower nightly rate"
// @Param        maxPrice   query     number   false  "Inclusive upper nightly rate"
// @Param        guests     query     int      false  "Minimum capacity"
// @Param        amenities  query     string   false  "Comma separated, all required"
// @Param        available  query     bool     false  "Only available rooms"
// @Success      200        {object}  roomListResponse
// @Failure      400        {object}  errorResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	filters, err := roomFiltersFromQuery(c)
	if err != nil {
		return err
	}
	res, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roomListResponse{Items: res.Items, Total: res.Total, ActiveFilters: res.ActiveFilters})
}

// Get handles GET /api/rooms/:id.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  domain.Room
// @Failure      404  {object}  errorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	room, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Compare handles GET /api/rooms/compare?ids=r1,r2.
//
// @Summary      Compare rooms side by side
// @Tags         rooms
// @Produce      json
// @Param        ids  query     string  true  "Up to four comma separated room ids"
// @Success      200  {object}  filter.Matrix
// @Failure      400  {object}  errorResponse
// @Router       /api/rooms/compare [get]
func (h *RoomHandler) Compare(c echo.Context) error {
	ids := splitList(c.QueryParams()["ids"])
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids is required")
	}
	m, err := h.service.Compare(ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}
