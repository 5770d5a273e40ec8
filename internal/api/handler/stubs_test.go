package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/api/middleware"
	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/filter"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	listFn     func(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) ListStaff(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	return s.listFn(ctx, role)
}

type stubSessionService struct {
	loginFn   func(ctx context.Context, email, password string) (*domain.Session, error)
	refreshFn func(ctx context.Context, token string) (*domain.Session, error)
	loggedOut []string
}

func (s *stubSessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) CurrentUser(context.Context, string) *domain.User { return nil }

func (s *stubSessionService) Resolve(context.Context, string) *domain.Session { return nil }

func (s *stubSessionService) Refresh(ctx context.Context, token string) (*domain.Session, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubSessionService) Logout(_ context.Context, id string) error {
	s.loggedOut = append(s.loggedOut, id)
	return nil
}

type stubBookingService struct {
	submitFn func(ctx context.Context, in ports.SubmitBookingInput) (*ports.BookingResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Booking, error)
	listFn   func(ctx context.Context, q ports.BookingQuery, f filter.BookingFilters) (*ports.BookingListResult, error)
	statusFn func(ctx context.Context, id string, st domain.BookingStatus, actor string) (*domain.Booking, error)
	assignFn func(ctx context.Context, id, employeeID string) (*domain.Booking, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBookingService) Submit(ctx context.Context, in ports.SubmitBookingInput) (*ports.BookingResult, error) {
	return s.submitFn(ctx, in)
}

func (s *stubBookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookingService) List(ctx context.Context, q ports.BookingQuery, f filter.BookingFilters) (*ports.BookingListResult, error) {
	return s.listFn(ctx, q, f)
}

func (s *stubBookingService) ChangeStatus(ctx context.Context, id string, st domain.BookingStatus, actor string) (*domain.Booking, error) {
	return s.statusFn(ctx, id, st, actor)
}

func (s *stubBookingService) Assign(ctx context.Context, id, employeeID string) (*domain.Booking, error) {
	return s.assignFn(ctx, id, employeeID)
}

func (s *stubBookingService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubRoomService struct {
	getFn     func(ctx context.Context, id string) (*domain.Room, error)
	listFn    func(ctx context.Context, f filter.RoomFilters) (*ports.RoomListResult, error)
	compareFn func(ids []string) (*filter.Matrix, error)
	updateFn  func(ctx context.Context, id string, in ports.UpdateRoomInput) (*domain.Room, error)
}

func (s *stubRoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.getFn(ctx, id)
}

func (s *stubRoomService) List(ctx context.Context, f filter.RoomFilters) (*ports.RoomListResult, error) {
	return s.listFn(ctx, f)
}

func (s *stubRoomService) Compare(ids []string) (*filter.Matrix, error) { return s.compareFn(ids) }

func (s *stubRoomService) Update(ctx context.Context, id string, in ports.UpdateRoomInput) (*domain.Room, error) {
	return s.updateFn(ctx, id, in)
}

type stubPaymentService struct {
	payFn func(ctx context.Context, in ports.PayInput) (*domain.Receipt, error)
}

func (s *stubPaymentService) Pay(ctx context.Context, in ports.PayInput) (*domain.Receipt, error) {
	return s.payFn(ctx, in)
}

// newTestContext builds an Echo context with the validator installed and,
// when user is non-nil, a signed-in session.
func newTestContext(method, target string, body io.Reader, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.KeyUser, user)
		c.Set(middleware.KeySessionID, "sess-1")
	}
	return c, rec
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
