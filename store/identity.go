package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"greychat/models"
)

// IdentityStore owns durable user records. Credentials are opaque to it:
// hashing happens at the HTTP boundary and the store only keeps the result.
type IdentityStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewIdentityStore(db *sql.DB) *IdentityStore {
	return &IdentityStore{db: db, now: time.Now}
}

// NewUser carries the validated registration input.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Image        string
}

func (s *IdentityStore) Create(ctx context.Context, nu NewUser) (*models.User, error) {
	if nu.Name == "" || nu.Email == "" || nu.PasswordHash == "" {
		return nil, Invalidf("name, email and password are required")
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      nu.Name,
		Email:     nu.Email,
		Image:     nu.Image,
		Password:  nu.PasswordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, image, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.Image, user.Password, now, now,
	)
	if isDuplicateEntry(err) {
		return nil, Invalidf("email already registered")
	}
	if err != nil {
		return nil, unavailable("create user", err)
	}
	return user, nil
}

// GetByEmail returns the full record including the credential hash, for
// login verification only.
func (s *IdentityStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, image, password, created_at, updated_at FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, unavailable("get user by email", err)
	}
	return &u, nil
}

func (s *IdentityStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, image FROM users WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Image)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, unavailable("get user", err)
	}
	return &p, nil
}

func (s *IdentityStore) UpdateName(ctx context.Context, id, name string) error {
	if name == "" {
		return Invalidf("name must not be empty")
	}
	if err := requireUser(ctx, s.db, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, updated_at = ? WHERE id = ?",
		name, s.now(), id,
	)
	if err != nil {
		return unavailable("update name", err)
	}
	return nil
}

// UpdateImage stores a new profile-image reference. The reference is an
// opaque path returned by the upload endpoint.
func (s *IdentityStore) UpdateImage(ctx context.Context, id, image string) error {
	if image == "" {
		return Invalidf("image reference must not be empty")
	}
	if err := requireUser(ctx, s.db, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET image = ?, updated_at = ? WHERE id = ?",
		image, s.now(), id,
	)
	if err != nil {
		return unavailable("update image", err)
	}
	return nil
}
