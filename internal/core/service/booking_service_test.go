package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/filter"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	byID      map[string]*domain.Booking
	createErr error
	creates   int
	// keyMisses makes that many FindByIdempotencyKey calls miss, as when two
	// submissions race past the lookup.
	keyMisses int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if _, taken := r.byID[b.ID]; taken {
		return domain.ErrDuplicateBooking
	}
	if b.IdempotencyKey != "" {
		for _, existing := range r.byID {
			if existing.IdempotencyKey == b.IdempotencyKey {
				return domain.ErrDuplicateIdempotencyKey
			}
		}
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Booking, error) {
	if r.keyMisses > 0 {
		r.keyMisses--
		return nil, domain.ErrBookingNotFound
	}
	for _, b := range r.byID {
		if b.IdempotencyKey == key {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

// List mirrors the Mongo query: exact match on non-empty fields, newest first.
func (r *stubBookingRepo) List(_ context.Context, q ports.BookingQuery) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if q.GuestEmail != "" && b.Guest.Email != q.GuestEmail {
			continue
		}
		if q.AssignedEmployee != "" && b.AssignedEmployee != q.AssignedEmployee {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBookingRepo) Assign(_ context.Context, id, employeeID string) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.AssignedEmployee = employeeID
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubRoomRepo struct {
	byID    map[string]*domain.Room
	findErr error
}

func newStubRoomRepo(rooms ...*domain.Room) *stubRoomRepo {
	r := &stubRoomRepo{byID: make(map[string]*domain.Room)}
	for _, room := range rooms {
		r.byID[room.ID] = room
	}
	return r
}

func (r *stubRoomRepo) FindByID(_ context.Context, id string) (*domain.Room, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	room, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	clone := *room
	return &clone, nil
}

func (r *stubRoomRepo) List(_ context.Context) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0, len(r.byID))
	for _, room := range r.byID {
		clone := *room
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRoomRepo) Update(_ context.Context, room *domain.Room) error {
	if _, ok := r.byID[room.ID]; !ok {
		return domain.ErrRoomNotFound
	}
	clone := *room
	r.byID[room.ID] = &clone
	return nil
}

func (r *stubRoomRepo) Upsert(_ context.Context, rooms []*domain.Room) error {
	for _, room := range rooms {
		clone := *room
		r.byID[room.ID] = &clone
	}
	return nil
}

type stubPublisher struct {
	events []ports.BookingEventInput
}

func (p *stubPublisher) Enqueue(e ports.BookingEventInput) { p.events = append(p.events, e) }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var deluxe = &domain.Room{ID: "r2", Name: "Habitación Deluxe", Type: "deluxe", Number: "201", NightlyRate: 150, Capacity: 3, Available: true}

type bookingFixture struct {
	svc       *BookingService
	repo      *stubBookingRepo
	users     *stubAuthRepo
	publisher *stubPublisher
}

func newBookingFixture() *bookingFixture {
	repo := newStubBookingRepo()
	users := newStubAuthRepo()
	pub := &stubPublisher{}
	svc := NewBookingService(repo, newStubRoomRepo(deluxe), users, pub, zerolog.Nop())
	return &bookingFixture{svc: svc, repo: repo, users: users, publisher: pub}
}

func validSubmission() ports.SubmitBookingInput {
	return ports.SubmitBookingInput{
		RoomID:   "r2",
		CheckIn:  "2025-03-10",
		CheckOut: "2025-03-13",
		Guests:   2,
		Name:     "Ana López",
		Email:    "Ana@Example.com",
		Phone:    "+34 600 000 000",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestValidateSubmission_ReportsFirstMissingField(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*ports.SubmitBookingInput)
		field string
	}{
		{"room", func(in *ports.SubmitBookingInput) { in.RoomID = "" }, "roomId"},
		{"check-in", func(in *ports.SubmitBookingInput) { in.CheckIn = "  " }, "checkIn"},
		{"check-out", func(in *ports.SubmitBookingInput) { in.CheckOut = "" }, "checkOut"},
		{"zero guests", func(in *ports.SubmitBookingInput) { in.Guests = 0 }, "guests"},
		{"name", func(in *ports.SubmitBookingInput) { in.Name = "" }, "name"},
		{"email", func(in *ports.SubmitBookingInput) { in.Email = "" }, "email"},
		{"phone", func(in *ports.SubmitBookingInput) { in.Phone = "" }, "phone"},
		{"name before phone", func(in *ports.SubmitBookingInput) { in.Name, in.Phone = "", "" }, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSubmission()
			tc.mut(&in)

			err := ValidateSubmission(in)
			var missing *domain.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, missing.Field)
			}
			if err.Error() != "Campo requerido faltante: "+tc.field {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}

	if err := ValidateSubmission(validSubmission()); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestBookingService_Submit_Success(t *testing.T) {
	f := newBookingFixture()

	res, err := f.svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	b := res.Booking
	if res.AlreadyExisted {
		t.Error("fresh submission reported as replay")
	}
	if len(b.ID) != 10 || b.ID[:2] != "BK" {
		t.Errorf("unexpected booking id format: %q", b.ID)
	}
	if b.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", b.Status)
	}
	if b.Guest.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", b.Guest.Email)
	}
	if b.Room.Number != "201" || b.Room.Type != "deluxe" {
		t.Errorf("expected room snapshot, got %+v", b.Room)
	}
	if b.TotalCost != 450 {
		t.Errorf("expected 3 nights x 150 = 450, got %v", b.TotalCost)
	}
	if _, ok := f.repo.byID[b.ID]; !ok {
		t.Error("booking not persisted")
	}
}

func TestBookingService_Submit_MissingField(t *testing.T) {
	f := newBookingFixture()
	in := validSubmission()
	in.Email = ""

	_, err := f.svc.Submit(context.Background(), in)
	var missing *domain.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "email" {
		t.Fatalf("expected missing email, got %v", err)
	}
	if f.repo.creates != 0 {
		t.Error("expected no write on invalid submission")
	}
}

func TestBookingService_Submit_UnknownRoomKeepsID(t *testing.T) {
	f := newBookingFixture()
	in := validSubmission()
	in.RoomID = "r99"

	res, err := f.svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Booking.Room.ID != "r99" || res.Booking.TotalCost != 0 {
		t.Errorf("unexpected booking for unknown room: %+v", res.Booking)
	}
}

func TestBookingService_Submit_RoomLookupError(t *testing.T) {
	repo := newStubBookingRepo()
	rooms := newStubRoomRepo()
	rooms.findErr = errors.New("mongo down")
	svc := NewBookingService(repo, rooms, newStubAuthRepo(), &stubPublisher{}, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), validSubmission()); err == nil {
		t.Fatal("expected error when room lookup fails")
	}
}

func TestBookingService_Submit_IdempotentReplay(t *testing.T) {
	f := newBookingFixture()
	in := validSubmission()
	in.IdempotencyKey = "key-1"

	first, err := f.svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := f.svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !second.AlreadyExisted || second.Booking.ID != first.Booking.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Booking.ID, second)
	}
	if len(f.repo.byID) != 1 {
		t.Errorf("expected exactly one stored booking, got %d", len(f.repo.byID))
	}
}

func TestBookingService_Submit_ConcurrentSameKeyReplays(t *testing.T) {
	f := newBookingFixture()
	f.repo.keyMisses = 2
	in := validSubmission()
	in.IdempotencyKey = "k1"

	first, err := f.svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := f.svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !second.AlreadyExisted || second.Booking.ID != first.Booking.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Booking.ID, second.Booking)
	}
	if f.repo.creates != 2 {
		t.Errorf("key conflict must not be retried as an id collision, got %d creates", f.repo.creates)
	}
	if len(f.repo.byID) != 1 {
		t.Errorf("expected exactly one stored booking, got %d", len(f.repo.byID))
	}
}

func TestBookingService_Submit_RetriesOnCollision(t *testing.T) {
	f := newBookingFixture()
	f.repo.byID["BK00000001"] = &domain.Booking{ID: "BK00000001"}

	ids := []string{"BK00000001", "BK00000002"}
	f.svc.newID = func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	res, err := f.svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Booking.ID != "BK00000002" {
		t.Errorf("expected second id after collision, got %s", res.Booking.ID)
	}
}

func TestBookingService_Submit_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newBookingFixture()
	f.repo.byID["BK00000001"] = &domain.Booking{ID: "BK00000001"}
	f.svc.newID = func() (string, error) { return "BK00000001", nil }

	_, err := f.svc.Submit(context.Background(), validSubmission())
	if !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}
	if f.repo.creates != maxIDAttempts {
		t.Errorf("expected %d attempts, got %d", maxIDAttempts, f.repo.creates)
	}
}

func TestBookingService_List_AppliesFilters(t *testing.T) {
	f := newBookingFixture()
	now := time.Now().UTC()
	f.repo.byID["BK1"] = &domain.Booking{ID: "BK1", Status: domain.StatusPending, Guest: domain.Guest{Email: "a@x.com"}, CreatedAt: now.Add(-time.Hour)}
	f.repo.byID["BK2"] = &domain.Booking{ID: "BK2", Status: domain.StatusConfirmed, Guest: domain.Guest{Email: "a@x.com"}, CreatedAt: now}
	f.repo.byID["BK3"] = &domain.Booking{ID: "BK3", Status: domain.StatusPending, Guest: domain.Guest{Email: "b@x.com"}, CreatedAt: now}

	filters := filter.DefaultBookingFilters()
	filters.Status = "pending"
	res, err := f.svc.List(context.Background(), ports.BookingQuery{}, filters)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 || res.ActiveFilters != 1 {
		t.Fatalf("expected 2 pending bookings and 1 active filter, got total=%d active=%d", res.Total, res.ActiveFilters)
	}

	mine, _ := f.svc.List(context.Background(), ports.BookingQuery{GuestEmail: "a@x.com"}, filter.DefaultBookingFilters())
	if mine.Total != 2 || mine.Items[0].ID != "BK2" {
		t.Fatalf("expected newest-first guest bookings, got %+v", mine.Items)
	}
}

func TestBookingService_ChangeStatus(t *testing.T) {
	f := newBookingFixture()
	f.repo.byID["BK1"] = &domain.Booking{ID: "BK1", Status: domain.StatusCompleted}

	// Any status may follow any other.
	b, err := f.svc.ChangeStatus(context.Background(), "BK1", "Pending", "desk@example.com")
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if b.Status != domain.StatusPending || f.repo.byID["BK1"].Status != domain.StatusPending {
		t.Errorf("expected pending, got %s", b.Status)
	}
	if len(f.publisher.events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(f.publisher.events))
	}
	ev := f.publisher.events[0]
	if ev.From != "completed" || ev.To != "pending" || ev.Actor != "desk@example.com" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestBookingService_ChangeStatus_Errors(t *testing.T) {
	f := newBookingFixture()
	f.repo.byID["BK1"] = &domain.Booking{ID: "BK1", Status: domain.StatusPending}

	if _, err := f.svc.ChangeStatus(context.Background(), "BK1", "archived", "x"); err != domain.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.svc.ChangeStatus(context.Background(), "BK404", domain.StatusConfirmed, "x"); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("expected no events on failure")
	}
}

func TestBookingService_Assign(t *testing.T) {
	f := newBookingFixture()
	f.repo.byID["BK1"] = &domain.Booking{ID: "BK1"}
	emp, _ := f.users.Create(context.Background(), &domain.User{Email: "maid@example.com", Role: domain.RoleEmployee})
	guest, _ := f.users.Create(context.Background(), &domain.User{Email: "guest@example.com", Role: domain.RoleClient})

	b, err := f.svc.Assign(context.Background(), "BK1", emp.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if b.AssignedEmployee != emp.ID || f.repo.byID["BK1"].AssignedEmployee != emp.ID {
		t.Errorf("employee not assigned: %+v", b)
	}

	if _, err := f.svc.Assign(context.Background(), "BK1", guest.ID); err != domain.ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole for non-employee, got %v", err)
	}
	if _, err := f.svc.Assign(context.Background(), "BK1", "nobody"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestBookingService_Delete(t *testing.T) {
	f := newBookingFixture()
	f.repo.byID["BK1"] = &domain.Booking{ID: "BK1"}

	if err := f.svc.Delete(context.Background(), "BK1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "BK1"); err != domain.ErrBookingNotFound {
		t.Errorf("expected deleted booking to be gone, got %v", err)
	}
}

func TestGenerateBookingID_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		id, err := generateBookingID()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(id) != 10 || id[:2] != "BK" {
			t.Fatalf("unexpected id %q", id)
		}
		for _, c := range id[2:] {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in id %q", id)
			}
		}
	}
}
