package handler

import "github.com/hotelhub/hotel-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         *domain.User `json:"user"`
	Redirect     string       `json:"redirect"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type meResponse struct {
	User           *domain.User `json:"user"`
	DashboardRoute string       `json:"dashboard_route"`
}

// --- Bookings ---

type paymentRequest struct {
	Method         string `json:"method"          validate:"omitempty,oneof=card transfer cash"`
	CardholderName string `json:"cardholder_name"`
}

type paymentResponse struct {
	Success bool            `json:"success"`
	Receipt *domain.Receipt `json:"receipt"`
}

type bookingListResponse struct {
	Items         []*domain.Booking `json:"items"`
	Total         int               `json:"total"`
	ActiveFilters int               `json:"activeFilters"`
}

// --- Rooms ---

type roomListResponse struct {
	Items         []*domain.Room `json:"items"`
	Total         int            `json:"total"`
	ActiveFilters int            `json:"activeFilters"`
}

// --- Admin ---

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type assignRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

type updateRoomRequest struct {
	NightlyRate *float64 `json:"nightly_rate" validate:"omitempty,gt=0"`
	Available   *bool    `json:"available"`
}

type createStaffRequest struct {
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=8"`
	Name        string   `json:"name"        validate:"required"`
	Role        string   `json:"role"        validate:"required,oneof=administrator reception employee"`
	Department  string   `json:"department"`
	Phone       string   `json:"phone"`
	Position    string   `json:"position"`
	Specialties []string `json:"specialties"`
}

type userListResponse struct {
	Items []*domain.User `json:"items"`
	Total int            `json:"total"`
}

// --- Pages ---

type pageResponse struct {
	Page string       `json:"page"`
	User *domain.User `json:"user"`
}
