package usecase

import (
	"errors"
	"testing"
	"time"

	"meetup-backend/internal/reservation/domain"
	"meetup-backend/internal/reservation/dto"
)

// fakeRepo is an in-memory ReservationRepository
type fakeRepo struct {
	reservations map[string]*domain.Reservation
	participants map[string]map[string]bool // reservationID -> userID set
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reservations: make(map[string]*domain.Reservation),
		participants: make(map[string]map[string]bool),
	}
}

func (f *fakeRepo) Create(r *domain.Reservation) error {
	if r.ID == "" {
		r.ID = "res-" + r.Title
	}
	f.reservations[r.ID] = r
	f.participants[r.ID] = map[string]bool{r.HostID: true}
	return nil
}

func (f *fakeRepo) FindByID(id string) (*domain.Reservation, error) {
	return f.reservations[id], nil
}

func (f *fakeRepo) FindUpcoming(after time.Time, limit, offset int) ([]*domain.Reservation, int64, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.Status == domain.StatusOpen && !r.ReservationDatetime.Before(after) {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) FindJoined(userID string, limit, offset int) ([]*domain.Reservation, int64, error) {
	var out []*domain.Reservation
	for id, users := range f.participants {
		if users[userID] {
			out = append(out, f.reservations[id])
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(r *domain.Reservation) error {
	f.reservations[r.ID] = r
	return nil
}

func (f *fakeRepo) UpdateStatus(id string, status domain.ReservationStatus) error {
	r, ok := f.reservations[id]
	if !ok {
		return errors.New("missing reservation")
	}
	r.Status = status
	return nil
}

func (f *fakeRepo) AddParticipant(reservationID, userID string) error {
	f.participants[reservationID][userID] = true
	return nil
}

func (f *fakeRepo) RemoveParticipant(reservationID, userID string) error {
	delete(f.participants[reservationID], userID)
	return nil
}

func (f *fakeRepo) IsParticipant(reservationID, userID string) (bool, error) {
	return f.participants[reservationID][userID], nil
}

func (f *fakeRepo) CountParticipants(reservationID string) (int64, error) {
	return int64(len(f.participants[reservationID])), nil
}

func (f *fakeRepo) FindInWindow(start, end time.Time) ([]*domain.Reservation, error) {
	return nil, nil
}

func (f *fakeRepo) FindParticipants(reservationID string) ([]domain.ParticipantInfo, error) {
	return nil, nil
}

func newTestUsecase(repo *fakeRepo, now time.Time) *reservationUsecase {
	return &reservationUsecase{
		repo:    repo,
		nowFunc: func() time.Time { return now },
	}
}

func TestCreate_HostBecomesParticipant(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	u := newTestUsecase(repo, now)

	reservation, err := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Friday Football",
		ReservationDatetime: now.Add(2 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	joined, _ := repo.IsParticipant(reservation.ID, "host1")
	if !joined {
		t.Fatal("host must automatically participate in their reservation")
	}
}

func TestCreate_RejectsPastDatetime(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	u := newTestUsecase(newFakeRepo(), now)

	_, err := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Yesterday",
		ReservationDatetime: now.Add(-time.Hour).Format(time.RFC3339),
	})
	if !errors.Is(err, ErrPastDatetime) {
		t.Fatalf("want ErrPastDatetime, got %v", err)
	}
}

func TestJoin_DuplicateRejected(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	u := newTestUsecase(repo, now)

	reservation, _ := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Friday Football",
		ReservationDatetime: now.Add(2 * time.Hour).Format(time.RFC3339),
	})

	if err := u.Join(reservation.ID, "u1"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := u.Join(reservation.ID, "u1"); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("want ErrAlreadyJoined, got %v", err)
	}
}

func TestJoin_CapacityEnforced(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	u := newTestUsecase(repo, now)

	// Capacity 2: the host occupies one slot
	reservation, _ := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Small Table",
		Capacity:            2,
		ReservationDatetime: now.Add(2 * time.Hour).Format(time.RFC3339),
	})

	if err := u.Join(reservation.ID, "u1"); err != nil {
		t.Fatalf("join within capacity: %v", err)
	}
	if err := u.Join(reservation.ID, "u2"); !errors.Is(err, ErrFull) {
		t.Fatalf("want ErrFull, got %v", err)
	}
}

func TestJoin_ClosedReservationRejected(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	u := newTestUsecase(repo, now)

	reservation, _ := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Cancelled Plans",
		ReservationDatetime: now.Add(2 * time.Hour).Format(time.RFC3339),
	})
	if err := u.Cancel(reservation.ID, "host1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if err := u.Join(reservation.ID, "u1"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("want ErrNotOpen, got %v", err)
	}
}

func TestLeave_HostCannotLeave(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	u := newTestUsecase(repo, now)

	reservation, _ := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Friday Football",
		ReservationDatetime: now.Add(2 * time.Hour).Format(time.RFC3339),
	})

	if err := u.Leave(reservation.ID, "host1"); !errors.Is(err, ErrHostCannotLeave) {
		t.Fatalf("want ErrHostCannotLeave, got %v", err)
	}
}

func TestCancel_OnlyHost(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	u := newTestUsecase(repo, now)

	reservation, _ := u.Create("host1", &dto.CreateReservationRequest{
		Title:               "Friday Football",
		ReservationDatetime: now.Add(2 * time.Hour).Format(time.RFC3339),
	})

	if err := u.Cancel(reservation.ID, "intruder"); !errors.Is(err, ErrNotHost) {
		t.Fatalf("want ErrNotHost, got %v", err)
	}
}
