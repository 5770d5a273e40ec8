package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/api/metrics"
	"github.com/hotelhub/hotel-api/internal/api/middleware"
	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// BookingHandler serves the public booking flow and the per-user booking lists.
type BookingHandler struct {
	service  ports.BookingService
	payments ports.PaymentService
}

func NewBookingHandler(service ports.BookingService, payments ports.PaymentService) *BookingHandler {
	return &BookingHandler{service: service, payments: payments}
}

// Submit handles POST /api/bookings. The response echoes the submitted body
// with bookingId and success added.
//
// @Summary      Submit a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string  false  "Replays the earlier booking for a repeated submission"
// @Param        body             body      object  true   "roomId, checkIn, checkOut, guests, name, email, phone"
// @Success      200              {object}  map[string]any
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Submit(c echo.Context) error {
	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		// Unreadable submissions fall through to the generic 500.
		return fmt.Errorf("decode booking submission: %w", err)
	}
	if body == nil {
		body = map[string]any{}
	}

	in := submissionFromBody(body)
	in.IdempotencyKey = strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey))

	res, err := h.service.Submit(c.Request().Context(), in)
	if err != nil {
		var missing *domain.MissingFieldError
		if errors.As(err, &missing) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: missing.Error()})
		}
		return err
	}

	if !res.AlreadyExisted {
		roomType := res.Booking.Room.Type
		if roomType == "" {
			roomType = "unknown"
		}
		metrics.BookingsCreatedTotal.WithLabelValues(roomType).Inc()
	}

	body["bookingId"] = res.Booking.ID
	body["success"] = true
	return c.JSON(http.StatusOK, body)
}

// Pay handles POST /api/bookings/:id/payment.
//
// @Summary      Pay for a booking (simulated)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id    path      string          true   "Booking id"
// @Param        body  body      paymentRequest  false  "Payment details"
// @Success      200   {object}  paymentResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/bookings/{id}/payment [post]
func (h *BookingHandler) Pay(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	receipt, err := h.payments.Pay(c.Request().Context(), ports.PayInput{
		BookingID:      c.Param("id"),
		Method:         req.Method,
		CardholderName: req.CardholderName,
	})
	switch {
	case errors.Is(err, domain.ErrPaymentInProgress):
		metrics.PaymentsTotal.WithLabelValues("in_progress").Inc()
		return err
	case err != nil:
		metrics.PaymentsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.PaymentsTotal.WithLabelValues("ok").Inc()
	metrics.PaymentDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, paymentResponse{Success: true, Receipt: receipt})
}

// Get handles GET /api/bookings/:id. Clients only see bookings made under
// their own email; staff see any booking.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	b, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !domain.IsStaff(user.Role) && !strings.EqualFold(b.Guest.Email, user.Email) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, b)
}

// Mine handles GET /api/me/bookings for clients.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookingListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/me/bookings [get]
func (h *BookingHandler) Mine(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return h.list(c, ports.BookingQuery{GuestEmail: user.Email})
}

// Assigned handles GET /api/employee/bookings for employees.
//
// @Summary      List bookings assigned to me
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookingListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/employee/bookings [get]
func (h *BookingHandler) Assigned(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return h.list(c, ports.BookingQuery{AssignedEmployee: user.ID})
}

func (h *BookingHandler) list(c echo.Context, q ports.BookingQuery) error {
	filters, err := bookingFiltersFromQuery(c)
	if err != nil {
		return err
	}
	res, err := h.service.List(c.Request().Context(), q, filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingListResponse{Items: res.Items, Total: res.Total, ActiveFilters: res.ActiveFilters})
}

// submissionFromBody reads the booking form loosely: numbers and strings are
// both accepted, anything else reads as absent.
func submissionFromBody(body map[string]any) ports.SubmitBookingInput {
	return ports.SubmitBookingInput{
		RoomID:   stringField(body, "roomId"),
		CheckIn:  stringField(body, "checkIn"),
		CheckOut: stringField(body, "checkOut"),
		Guests:   intField(body, "guests"),
		Name:     stringField(body, "name"),
		Email:    stringField(body, "email"),
		Phone:    stringField(body, "phone"),
	}
}

func stringField(body map[string]any, key string) string {
	switch v := body[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func intField(body map[string]any, key string) int {
	switch v := body[key].(type) {
	case float64:
		// Fractional or out of range counts read as absent.
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return 0
		}
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}
