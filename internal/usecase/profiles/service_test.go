package profiles

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"

	"medhasmind/internal/domain/profile"
)

type mockRepo struct {
	byID map[uuid.UUID]profile.Profile

	searched     *string
	listedRole   *profile.Role
	searchOut    []profile.Profile
	listOut      []profile.Profile
	updateOut    profile.Profile
	updateFound  bool
	updateErr    error
	setActiveErr error
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, bool, error) {
	p, ok := m.byID[id]
	return p, ok, nil
}

func (m *mockRepo) GetByEmail(context.Context, string) (profile.Profile, bool, error) {
	return profile.Profile{}, false, nil
}

func (m *mockRepo) Create(context.Context, profile.Profile) (profile.Profile, error) {
	return profile.Profile{}, nil
}

func (m *mockRepo) Update(_ context.Context, _ uuid.UUID, _ profile.UpdateInput) (profile.Profile, bool, error) {
	return m.updateOut, m.updateFound, m.updateErr
}

func (m *mockRepo) StampLastLogin(context.Context, uuid.UUID) error { return nil }

func (m *mockRepo) SetActive(context.Context, uuid.UUID, bool) error { return m.setActiveErr }

func (m *mockRepo) Search(_ context.Context, query string, _ int) ([]profile.Profile, error) {
	m.searched = &query
	return m.searchOut, nil
}

func (m *mockRepo) ListByRole(_ context.Context, role profile.Role, _ int) ([]profile.Profile, error) {
	m.listedRole = &role
	return m.listOut, nil
}

type mockStats struct {
	out profile.Stats
	err error
}

func (m mockStats) Summary(context.Context, uuid.UUID) (profile.Stats, error) {
	return m.out, m.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestService_GetByID_AbsenceIsNotFound(t *testing.T) {
	s := NewService(&mockRepo{byID: map[uuid.UUID]profile.Profile{}}, mockStats{}, testLogger())

	_, err := s.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_GetWithStats(t *testing.T) {
	id := uuid.New()
	repo := &mockRepo{byID: map[uuid.UUID]profile.Profile{id: {ID: id, Email: "a@x.com"}}}
	stats := mockStats{out: profile.Stats{TotalCourses: 12, CompletedCourses: 8, TotalHours: 156}}
	s := NewService(repo, stats, testLogger())

	prof, st, err := s.GetWithStats(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prof.ID != id {
		t.Fatalf("wrong profile returned")
	}
	if st.CompletedCourses != 8 {
		t.Fatalf("expected 8 completed courses, got %d", st.CompletedCourses)
	}
	if st.SkillLevel() != "advanced" {
		t.Fatalf("expected advanced, got %s", st.SkillLevel())
	}
}

func TestService_UpdateOwn_EmptyInputAllowed(t *testing.T) {
	id := uuid.New()
	repo := &mockRepo{updateOut: profile.Profile{ID: id}, updateFound: true}
	s := NewService(repo, mockStats{}, testLogger())

	// An empty field set is a valid update; only updated_at moves.
	if _, err := s.UpdateOwn(context.Background(), id, profile.UpdateInput{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestService_UpdateOwn_RejectsOversizedBio(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	bio := string(long)

	s := NewService(&mockRepo{}, mockStats{}, testLogger())
	_, err := s.UpdateOwn(context.Background(), uuid.New(), profile.UpdateInput{Bio: &bio})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_UpdateOwn_MissingProfile(t *testing.T) {
	s := NewService(&mockRepo{updateFound: false}, mockStats{}, testLogger())

	_, err := s.UpdateOwn(context.Background(), uuid.New(), profile.UpdateInput{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_AdminSearch_QueryWinsOverRole(t *testing.T) {
	repo := &mockRepo{searchOut: []profile.Profile{{Email: "a@x.com"}}}
	s := NewService(repo, mockStats{}, testLogger())

	out, err := s.AdminSearch(context.Background(), "ali", "student")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.searched == nil || *repo.searched != "ali" {
		t.Fatalf("expected a text search for %q", "ali")
	}
	if repo.listedRole != nil {
		t.Fatalf("role listing should not run when a query is present")
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
}

func TestService_AdminSearch_RoleOnly(t *testing.T) {
	repo := &mockRepo{listOut: []profile.Profile{{Role: profile.RolePartner}}}
	s := NewService(repo, mockStats{}, testLogger())

	out, err := s.AdminSearch(context.Background(), "", "partner")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.listedRole == nil || *repo.listedRole != profile.RolePartner {
		t.Fatalf("expected a partner role listing")
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
}

func TestService_AdminSearch_InvalidRole(t *testing.T) {
	s := NewService(&mockRepo{}, mockStats{}, testLogger())

	if _, err := s.AdminSearch(context.Background(), "", "superuser"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_AdminSearch_NoFiltersReturnsEmpty(t *testing.T) {
	repo := &mockRepo{}
	s := NewService(repo, mockStats{}, testLogger())

	out, err := s.AdminSearch(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected an empty, non-nil slice, got %#v", out)
	}
	if repo.searched != nil || repo.listedRole != nil {
		t.Fatalf("no remote call should be made without filters")
	}
}

func TestService_SetActive_SurfacesSignal(t *testing.T) {
	repo := &mockRepo{setActiveErr: errors.New("store unreachable")}
	s := NewService(repo, mockStats{}, testLogger())

	if err := s.SetActive(context.Background(), uuid.New(), false); err == nil {
		t.Fatalf("expected the best-effort failure signal")
	}
}
