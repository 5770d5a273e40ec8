package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/core/filter"
)

// bookingFiltersFromQuery reads the booking filter state from the query string.
// Absent parameters keep their defaults.
func bookingFiltersFromQuery(c echo.Context) (filter.BookingFilters, error) {
	f := filter.DefaultBookingFilters()
	err := echo.QueryParamsBinder(c).
		String("search", &f.Search).
		String("status", &f.Status).
		String("roomType", &f.RoomType).
		String("checkIn", &f.CheckIn).
		String("checkOut", &f.CheckOut).
		String("dateFrom", &f.DateFrom).
		String("dateTo", &f.DateTo).
		BindError()
	if err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if f.MinAmount, err = optionalFloat(c, "minAmount"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = optionalFloat(c, "maxAmount"); err != nil {
		return f, err
	}
	return f, nil
}

// roomFiltersFromQuery accepts amenities both repeated and comma separated.
func roomFiltersFromQuery(c echo.Context) (filter.RoomFilters, error) {
	var f filter.RoomFilters
	var amenities []string
	err := echo.QueryParamsBinder(c).
		String("search", &f.Search).
		String("type", &f.RoomType).
		Int("guests", &f.Guests).
		Strings("amenities", &amenities).
		Bool("available", &f.AvailableOnly).
		BindError()
	if err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid room filter")
	}
	f.Amenities = splitList(amenities)
	if f.MinPrice, err = optionalFloat(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optionalFloat(c, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a number", name))
	}
	return &v, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
