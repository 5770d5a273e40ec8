package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/filter"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

const fullSubmission = `{"roomId":"r2","checkIn":"2025-03-01","checkOut":"2025-03-04","guests":2,"name":"Ana","email":"ana@example.com","phone":"555-0101","notes":"late arrival"}`

func TestBookingHandler_Submit_Success(t *testing.T) {
	var got ports.SubmitBookingInput
	svc := &stubBookingService{
		submitFn: func(_ context.Context, in ports.SubmitBookingInput) (*ports.BookingResult, error) {
			got = in
			return &ports.BookingResult{Booking: &domain.Booking{ID: "BK12345678", Room: domain.BookedRoom{Type: "deluxe"}}}, nil
		},
	}
	h := NewBookingHandler(svc, &stubPaymentService{})

	c, rec := newTestContext(http.MethodPost, "/api/bookings", strings.NewReader(fullSubmission), nil)
	c.Request().Header.Set(headerIdempotencyKey, " form-42 ")

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got.RoomID != "r2" || got.Guests != 2 || got.Email != "ana@example.com" || got.IdempotencyKey != "form-42" {
		t.Fatalf("unexpected submission: %+v", got)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["bookingId"] != "BK12345678" || body["success"] != true {
		t.Fatalf("missing booking id or success flag: %v", body)
	}
	if body["notes"] != "late arrival" || body["name"] != "Ana" {
		t.Fatalf("submitted fields must be echoed: %v", body)
	}
}

func TestBookingHandler_Submit_MissingField(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{
		submitFn: func(context.Context, ports.SubmitBookingInput) (*ports.BookingResult, error) {
			return nil, &domain.MissingFieldError{Field: "checkOut"}
		},
	}, &stubPaymentService{})

	c, rec := newTestContext(http.MethodPost, "/api/bookings", strings.NewReader(`{"roomId":"r1","checkIn":"2025-03-01"}`), nil)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Campo requerido faltante: checkOut"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestBookingHandler_Submit_EmptyBody(t *testing.T) {
	var got ports.SubmitBookingInput
	h := NewBookingHandler(&stubBookingService{
		submitFn: func(_ context.Context, in ports.SubmitBookingInput) (*ports.BookingResult, error) {
			got = in
			return nil, &domain.MissingFieldError{Field: "roomId"}
		},
	}, &stubPaymentService{})

	c, rec := newTestContext(http.MethodPost, "/api/bookings", strings.NewReader(`null`), nil)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || got != (ports.SubmitBookingInput{}) {
		t.Fatalf("expected empty submission and 400, got %d %+v", rec.Code, got)
	}
}

func TestBookingHandler_Submit_MalformedJSON(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, &stubPaymentService{})

	c, _ := newTestContext(http.MethodPost, "/api/bookings", strings.NewReader(`{"roomId":`), nil)
	err := h.Submit(c)
	if err == nil || httpStatus(err) != http.StatusInternalServerError {
		t.Fatalf("expected an unmapped error for the central 500, got %v", err)
	}
}

func TestBookingHandler_Submit_UnexpectedError(t *testing.T) {
	boom := errors.New("mongo down")
	h := NewBookingHandler(&stubBookingService{
		submitFn: func(context.Context, ports.SubmitBookingInput) (*ports.BookingResult, error) {
			return nil, boom
		},
	}, &stubPaymentService{})

	c, _ := newTestContext(http.MethodPost, "/api/bookings", strings.NewReader(fullSubmission), nil)
	if err := h.Submit(c); !errors.Is(err, boom) {
		t.Fatalf("expected error to reach the central handler, got %v", err)
	}
}

func TestSubmissionFromBody_LooseTypes(t *testing.T) {
	in := submissionFromBody(map[string]any{
		"roomId": float64(3),
		"guests": "4",
		"name":   true,
		"phone":  "555",
	})
	if in.RoomID != "3" || in.Guests != 4 || in.Name != "" || in.Phone != "555" {
		t.Fatalf("unexpected conversion: %+v", in)
	}
	for _, guests := range []any{2.5, 1e300, -1e12, "abc", nil} {
		if got := submissionFromBody(map[string]any{"guests": guests}).Guests; got != 0 {
			t.Fatalf("guests %v: expected to read as absent, got %d", guests, got)
		}
	}
}

func TestBookingHandler_Pay(t *testing.T) {
	payments := &stubPaymentService{
		payFn: func(_ context.Context, in ports.PayInput) (*domain.Receipt, error) {
			if in.BookingID != "BK00000001" || in.Method != "transfer" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Receipt{Number: "RC-ABCDEF12", BookingID: in.BookingID, Amount: 450, Method: in.Method}, nil
		},
	}
	h := NewBookingHandler(&stubBookingService{}, payments)

	c, rec := newTestContext(http.MethodPost, "/", strings.NewReader(`{"method":"transfer"}`), nil)
	c.SetParamNames("id")
	c.SetParamValues("BK00000001")

	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp paymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Receipt == nil || resp.Receipt.Number != "RC-ABCDEF12" || resp.Receipt.Amount != 450 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBookingHandler_Pay_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
	}{
		{"unknown booking", `{}`, domain.ErrBookingNotFound},
		{"in flight", `{}`, domain.ErrPaymentInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBookingHandler(&stubBookingService{}, &stubPaymentService{
				payFn: func(context.Context, ports.PayInput) (*domain.Receipt, error) { return nil, tc.err },
			})
			c, _ := newTestContext(http.MethodPost, "/", strings.NewReader(tc.body), nil)
			c.SetParamNames("id")
			c.SetParamValues("BK1")
			if err := h.Pay(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}

	h := NewBookingHandler(&stubBookingService{}, &stubPaymentService{})
	c, _ := newTestContext(http.MethodPost, "/", strings.NewReader(`{"method":"bitcoin"}`), nil)
	if err := h.Pay(c); httpStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %v", err)
	}
}

func TestBookingHandler_Mine_ScopesToGuestEmail(t *testing.T) {
	var gotQuery ports.BookingQuery
	var gotFilters filter.BookingFilters
	svc := &stubBookingService{
		listFn: func(_ context.Context, q ports.BookingQuery, f filter.BookingFilters) (*ports.BookingListResult, error) {
			gotQuery, gotFilters = q, f
			return &ports.BookingListResult{Items: []*domain.Booking{{ID: "BK1"}}, Total: 1, ActiveFilters: 1}, nil
		},
	}
	h := NewBookingHandler(svc, &stubPaymentService{})

	user := &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleClient}
	c, rec := newTestContext(http.MethodGet, "/api/me/bookings?status=pending", nil, user)

	if err := h.Mine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotQuery.GuestEmail != "ana@example.com" || gotQuery.AssignedEmployee != "" {
		t.Fatalf("unexpected query: %+v", gotQuery)
	}
	if gotFilters.Status != "pending" {
		t.Fatalf("filters not forwarded: %+v", gotFilters)
	}

	var resp bookingListResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.ActiveFilters != 1 || len(resp.Items) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBookingHandler_Assigned_ScopesToEmployee(t *testing.T) {
	var gotQuery ports.BookingQuery
	svc := &stubBookingService{
		listFn: func(_ context.Context, q ports.BookingQuery, _ filter.BookingFilters) (*ports.BookingListResult, error) {
			gotQuery = q
			return &ports.BookingListResult{}, nil
		},
	}
	h := NewBookingHandler(svc, &stubPaymentService{})

	c, _ := newTestContext(http.MethodGet, "/api/employee/bookings", nil, &domain.User{ID: "emp-7", Role: domain.RoleEmployee})
	if err := h.Assigned(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotQuery.AssignedEmployee != "emp-7" || gotQuery.GuestEmail != "" {
		t.Fatalf("unexpected query: %+v", gotQuery)
	}

	c, _ = newTestContext(http.MethodGet, "/api/employee/bookings", nil, nil)
	if err := h.Assigned(c); httpStatus(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %v", err)
	}
}

func TestBookingHandler_Get_OwnerOrStaff(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{
		getFn: func(_ context.Context, id string) (*domain.Booking, error) {
			if id != "BK00000001" {
				return nil, domain.ErrBookingNotFound
			}
			return &domain.Booking{ID: id, Guest: domain.Guest{Email: "ana@example.com"}}, nil
		},
	}, &stubPaymentService{})

	cases := []struct {
		name    string
		id      string
		user    *domain.User
		wantErr error
		status  int
	}{
		{"owner", "BK00000001", &domain.User{Email: "Ana@Example.com", Role: domain.RoleClient}, nil, http.StatusOK},
		{"reception", "BK00000001", &domain.User{Email: "desk@example.com", Role: domain.RoleReception}, nil, http.StatusOK},
		{"other client", "BK00000001", &domain.User{Email: "eve@example.com", Role: domain.RoleClient}, domain.ErrForbidden, 0},
		{"unknown booking", "BK99999999", &domain.User{Email: "ana@example.com", Role: domain.RoleClient}, domain.ErrBookingNotFound, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/", nil, tc.user)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)

			err := h.Get(c)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}

	c, _ := newTestContext(http.MethodGet, "/", nil, nil)
	if err := h.Get(c); httpStatus(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %v", err)
	}
}
