package identity

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"medhasmind/internal/database"
)

// LocalProvider keeps credentials in a local table. Development and test
// substitute for the hosted auth API; recovery flows stay with the hosted
// provider because only it can deliver email.
type LocalProvider struct {
	db     database.DB
	logger *log.Logger
}

func NewLocalProvider(db database.DB, logger *log.Logger) *LocalProvider {
	return &LocalProvider{db: db, logger: logger}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrSignUpRejected, err)
	}

	subject := uuid.New()
	if _, err := p.db.Exec(ctx,
		`INSERT INTO identity_credentials (subject_id, email, password_hash) VALUES ($1, $2, $3)`,
		subject, email, string(hash),
	); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrSignUpRejected, err)
	}

	return Identity{SubjectID: subject, Email: email}, nil
}

func (p *LocalProvider) VerifyPassword(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var subject uuid.UUID
	var hash string
	err := p.db.QueryRow(ctx,
		`SELECT subject_id, password_hash FROM identity_credentials WHERE email = $1`,
		email,
	).Scan(&subject, &hash)
	if err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{SubjectID: subject, Email: email}, nil
}

func (p *LocalProvider) SendRecovery(_ context.Context, email string) error {
	if p.logger != nil {
		p.logger.Printf("[Identity] local provider cannot send recovery email for %s", email)
	}
	return ErrUnsupported
}

func (p *LocalProvider) ConfirmReset(context.Context, string, string) error {
	return ErrUnsupported
}

var _ Provider = (*LocalProvider)(nil)
