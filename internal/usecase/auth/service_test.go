package auth

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"

	"medhasmind/internal/domain/profile"
	"medhasmind/internal/infrastructure/identity"
	"medhasmind/internal/pkg/token"
)

type mockProvider struct {
	signUpIdentity identity.Identity
	signUpErr      error
	verifyIdentity identity.Identity
	verifyErr      error
	recoveryErr    error
	confirmErr     error
}

func (m mockProvider) SignUp(context.Context, string, string) (identity.Identity, error) {
	return m.signUpIdentity, m.signUpErr
}
func (m mockProvider) VerifyPassword(context.Context, string, string) (identity.Identity, error) {
	return m.verifyIdentity, m.verifyErr
}
func (m mockProvider) SendRecovery(context.Context, string) error { return m.recoveryErr }
func (m mockProvider) ConfirmReset(context.Context, string, string) error { return m.confirmErr }

type mockProfileRepo struct {
	byID      map[uuid.UUID]profile.Profile
	byEmail   map[string]profile.Profile
	createErr error
	created   *profile.Profile
	stampErr  error
	stamped   []uuid.UUID
	getErr    error
}

func (m *mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, bool, error) {
	if m.getErr != nil {
		return profile.Profile{}, false, m.getErr
	}
	p, ok := m.byID[id]
	return p, ok, nil
}

func (m *mockProfileRepo) GetByEmail(_ context.Context, email string) (profile.Profile, bool, error) {
	if m.getErr != nil {
		return profile.Profile{}, false, m.getErr
	}
	p, ok := m.byEmail[email]
	return p, ok, nil
}

func (m *mockProfileRepo) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	if m.createErr != nil {
		return profile.Profile{}, m.createErr
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	p.IsActive = true
	m.created = &p
	return p, nil
}

func (m *mockProfileRepo) Update(context.Context, uuid.UUID, profile.UpdateInput) (profile.Profile, bool, error) {
	return profile.Profile{}, false, nil
}

func (m *mockProfileRepo) StampLastLogin(_ context.Context, id uuid.UUID) error {
	if m.stampErr != nil {
		return m.stampErr
	}
	m.stamped = append(m.stamped, id)
	return nil
}

func (m *mockProfileRepo) SetActive(context.Context, uuid.UUID, bool) error { return nil }

func (m *mockProfileRepo) Search(context.Context, string, int) ([]profile.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepo) ListByRole(context.Context, profile.Role, int) ([]profile.Profile, error) {
	return nil, nil
}

type mockRevoker struct {
	marked map[string]time.Time
	err    error
}

func (m *mockRevoker) MarkRevoked(_ context.Context, tokenID string, expiresAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	if m.marked == nil {
		m.marked = map[string]time.Time{}
	}
	m.marked[tokenID] = expiresAt
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testTokens() token.Service {
	return token.NewHMACService("test-secret", 30*time.Minute)
}

func TestService_Signup_StudentGetsStudentRoleClaims(t *testing.T) {
	subject := uuid.New()
	repo := &mockProfileRepo{byID: map[uuid.UUID]profile.Profile{}, byEmail: map[string]profile.Profile{}}
	tokens := testTokens()
	s := NewService(mockProvider{signUpIdentity: identity.Identity{SubjectID: subject, Email: "a@x.com"}}, repo, tokens, &mockRevoker{}, testLogger())

	res, err := s.Signup(context.Background(), SignupInput{
		Email:    "a@x.com",
		Password: "longenough1",
		Name:     "A",
		UserType: profile.UserTypeStudent,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected a profile insert")
	}
	if repo.created.ID != subject {
		t.Fatalf("profile id should be the provider subject id")
	}
	if repo.created.Role != profile.RoleStudent {
		t.Fatalf("expected student role, got %s", repo.created.Role)
	}

	claims, err := tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Role != profile.RoleStudent {
		t.Fatalf("expected student claims, got %s", claims.Role)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected claims email a@x.com, got %s", claims.Email)
	}
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	existing := profile.Profile{ID: uuid.New(), Email: "a@x.com"}
	repo := &mockProfileRepo{byEmail: map[string]profile.Profile{"a@x.com": existing}}
	s := NewService(mockProvider{}, repo, testTokens(), &mockRevoker{}, testLogger())

	_, err := s.Signup(context.Background(), SignupInput{Email: "A@X.com", Password: "longenough1", Name: "A"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestService_Signup_ShortPassword(t *testing.T) {
	repo := &mockProfileRepo{byEmail: map[string]profile.Profile{}}
	s := NewService(mockProvider{}, repo, testTokens(), &mockRevoker{}, testLogger())

	_, err := s.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "short", Name: "A"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Signup_ProfileInsertRejected(t *testing.T) {
	repo := &mockProfileRepo{byEmail: map[string]profile.Profile{}, createErr: profile.ErrCreateFailed}
	s := NewService(mockProvider{signUpIdentity: identity.Identity{SubjectID: uuid.New(), Email: "a@x.com"}}, repo, testTokens(), &mockRevoker{}, testLogger())

	_, err := s.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "longenough1", Name: "A"})
	if !errors.Is(err, profile.ErrCreateFailed) {
		t.Fatalf("expected the create failure to surface, got %v", err)
	}
}

func TestService_Login_StampFailureDoesNotBlockLogin(t *testing.T) {
	subject := uuid.New()
	repo := &mockProfileRepo{
		byID: map[uuid.UUID]profile.Profile{
			subject: {ID: subject, Email: "a@x.com", Role: profile.RoleStudent, IsActive: true},
		},
		stampErr: errors.New("store unreachable"),
	}
	s := NewService(mockProvider{verifyIdentity: identity.Identity{SubjectID: subject, Email: "a@x.com"}}, repo, testTokens(), &mockRevoker{}, testLogger())

	res, err := s.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "longenough1"})
	if err != nil {
		t.Fatalf("login must succeed despite a failed stamp, got %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestService_Login_StampsLastLogin(t *testing.T) {
	subject := uuid.New()
	repo := &mockProfileRepo{
		byID: map[uuid.UUID]profile.Profile{
			subject: {ID: subject, Email: "a@x.com", Role: profile.RoleStudent, IsActive: true},
		},
	}
	s := NewService(mockProvider{verifyIdentity: identity.Identity{SubjectID: subject, Email: "a@x.com"}}, repo, testTokens(), &mockRevoker{}, testLogger())

	if _, err := s.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "longenough1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.stamped) != 1 || repo.stamped[0] != subject {
		t.Fatalf("expected one last-login stamp for %s", subject)
	}
}

func TestService_Login_InactiveAccount(t *testing.T) {
	subject := uuid.New()
	repo := &mockProfileRepo{
		byID: map[uuid.UUID]profile.Profile{
			subject: {ID: subject, Email: "a@x.com", Role: profile.RoleStudent, IsActive: false},
		},
	}
	s := NewService(mockProvider{verifyIdentity: identity.Identity{SubjectID: subject, Email: "a@x.com"}}, repo, testTokens(), &mockRevoker{}, testLogger())

	_, err := s.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "longenough1"})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestService_Login_MissingProfile(t *testing.T) {
	repo := &mockProfileRepo{byID: map[uuid.UUID]profile.Profile{}}
	s := NewService(mockProvider{verifyIdentity: identity.Identity{SubjectID: uuid.New(), Email: "a@x.com"}}, repo, testTokens(), &mockRevoker{}, testLogger())

	_, err := s.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "longenough1"})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestService_Login_UpstreamDown(t *testing.T) {
	repo := &mockProfileRepo{}
	s := NewService(mockProvider{verifyErr: identity.ErrUnavailable}, repo, testTokens(), &mockRevoker{}, testLogger())

	_, err := s.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "longenough1"})
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestService_Logout_MarksTokenRevoked(t *testing.T) {
	subject := uuid.New()
	tokens := testTokens()
	rev := &mockRevoker{}
	s := NewService(mockProvider{}, &mockProfileRepo{}, tokens, rev, testLogger())

	tok, err := tokens.Generate(token.Claims{UserID: subject, Email: "a@x.com", Role: profile.RoleStudent}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	claims, err := tokens.Validate(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := s.Logout(context.Background(), claims); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := rev.marked[claims.ID]; !ok {
		t.Fatalf("expected token id %q to be marked revoked", claims.ID)
	}
}

func TestService_Refresh_UsesCurrentRole(t *testing.T) {
	subject := uuid.New()
	tokens := testTokens()
	repo := &mockProfileRepo{
		byID: map[uuid.UUID]profile.Profile{
			subject: {ID: subject, Email: "a@x.com", Role: profile.RoleAdmin, IsActive: true},
		},
	}
	s := NewService(mockProvider{}, repo, tokens, &mockRevoker{}, testLogger())

	res, err := s.Refresh(context.Background(), token.Claims{UserID: subject, Email: "a@x.com", Role: profile.RoleStudent})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.Role != profile.RoleAdmin {
		t.Fatalf("refresh should pick up the stored role, got %s", claims.Role)
	}
}

func TestService_PasswordReset_LocalProviderUnsupported(t *testing.T) {
	s := NewService(mockProvider{recoveryErr: identity.ErrUnsupported}, &mockProfileRepo{}, testTokens(), &mockRevoker{}, testLogger())

	err := s.RequestPasswordReset(context.Background(), "a@x.com")
	if !errors.Is(err, ErrResetUnsupported) {
		t.Fatalf("expected ErrResetUnsupported, got %v", err)
	}
}
