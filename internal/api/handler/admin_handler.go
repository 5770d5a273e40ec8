package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/api/metrics"
	"github.com/hotelhub/hotel-api/internal/api/middleware"
	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

// AdminHandler serves the reception and administrator back office.
type AdminHandler struct {
	bookings ports.BookingService
	rooms    ports.RoomService
	users    ports.AuthService
}

func NewAdminHandler(bookings ports.BookingService, rooms ports.RoomService, users ports.AuthService) *AdminHandler {
	return &AdminHandler{bookings: bookings, rooms: rooms, users: users}
}

// ListBookings handles GET /api/admin/bookings.
//
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Matches id, room type, room number, guest name or email"
// @Param        status     query     string  false  "pending, confirmed, completed, cancelled or all"
// @Param        roomType   query     string  false  "Room type, or all"
// @Param        checkIn    query     string  false  "Exact check-in date (YYYY-MM-DD)"
// @Param        checkOut   query     string  false  "Exact check-out date (YYYY-MM-DD)"
// @Param        dateFrom   query     string  false  "Earliest check-in"
// @Param        dateTo     query     string  false  "Latest check-out"
// @Param        minAmount  query     number  false  "Inclusive lower total"
// @Param        maxAmount  query     number  false  "Inclusive upper total"
// @Success      200        {object}  bookingListResponse
// @Failure      403        {object}  errorResponse
// @Router       /api/admin/bookings [get]
func (h *AdminHandler) ListBookings(c echo.Context) error {
	filters, err := bookingFiltersFromQuery(c)
	if err != nil {
		return err
	}
	res, err := h.bookings.List(c.Request().Context(), ports.BookingQuery{}, filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingListResponse{Items: res.Items, Total: res.Total, ActiveFilters: res.ActiveFilters})
}

// ChangeStatus handles PATCH /api/admin/bookings/:id/status.
//
// @Summary      Change a booking status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Booking id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/bookings/{id}/status [patch]
func (h *AdminHandler) ChangeStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := ""
	if u := middleware.CurrentUser(c); u != nil {
		actor = u.Email
	}

	b, err := h.bookings.ChangeStatus(c.Request().Context(), c.Param("id"), domain.BookingStatus(req.Status), actor)
	if err != nil {
		return err
	}
	metrics.BookingStatusChangesTotal.WithLabelValues(string(b.Status)).Inc()
	return c.JSON(http.StatusOK, b)
}

// Assign handles PATCH /api/admin/bookings/:id/assign.
//
// @Summary      Assign an employee to a booking
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Booking id"
// @Param        body  body      assignRequest  true  "Employee"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/bookings/{id}/assign [patch]
func (h *AdminHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	b, err := h.bookings.Assign(c.Request().Context(), c.Param("id"), req.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id.
//
// @Summary      Delete a booking
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Booking id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/bookings/{id} [delete]
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	if err := h.bookings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRoom handles PATCH /api/admin/rooms/:id.
//
// @Summary      Edit a room's price or availability
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Room id"
// @Param        body  body      updateRoomRequest  true  "Fields to change"
// @Success      200   {object}  domain.Room
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/rooms/{id} [patch]
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	var req updateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.rooms.Update(c.Request().Context(), c.Param("id"), ports.UpdateRoomInput{
		NightlyRate: req.NightlyRate,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List staff accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "administrator, reception or employee"
// @Success      200   {object}  userListResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := domain.ParseRole(c.QueryParam("role"))
	users, err := h.users.ListStaff(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Items: users, Total: len(users)})
}

// CreateUser handles POST /api/admin/users.
//
// @Summary      Create a staff account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStaffRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        domain.ParseRole(req.Role),
		Department:  req.Department,
		Phone:       req.Phone,
		Position:    req.Position,
		Specialties: req.Specialties,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
