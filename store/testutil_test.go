package store

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// The tests run against in-memory SQLite with a schema mirroring the
// MySQL one from the database package. Every query in this package uses
// ?-placeholders and portable SQL, so the two stay interchangeable.
const testSchema = `
CREATE TABLE users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	image      TEXT NOT NULL DEFAULT '',
	password   TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE relationships (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	pair_key     TEXT NOT NULL UNIQUE,
	requester_id TEXT NOT NULL,
	addressee_id TEXT NOT NULL,
	status       TEXT NOT NULL,
	created_at   DATETIME NOT NULL,
	accepted_at  DATETIME
);
CREATE TABLE messages (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	pair_key     TEXT NOT NULL,
	sender_id    TEXT NOT NULL,
	recipient_id TEXT NOT NULL,
	kind         TEXT NOT NULL,
	body         TEXT NOT NULL,
	image_ref    TEXT NOT NULL DEFAULT '',
	sent_at      DATETIME NOT NULL
);
CREATE TABLE statuses (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL UNIQUE,
	author_id TEXT NOT NULL,
	text      TEXT NOT NULL,
	media     TEXT NOT NULL,
	posted_at DATETIME NOT NULL
);
`

// fakeClock hands out strictly increasing timestamps so ordering
// assertions are deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type testEnv struct {
	db            *sql.DB
	clock         *fakeClock
	users         *IdentityStore
	relationships *RelationshipStore
	messages      *MessageStore
	statuses      *StatusStore
	queries       *Queries
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	clock := newFakeClock()
	env := &testEnv{
		db:            db,
		clock:         clock,
		users:         NewIdentityStore(db),
		relationships: NewRelationshipStore(db),
		messages:      NewMessageStore(db),
	}
	env.users.now = clock.Now
	env.relationships.now = clock.Now
	env.messages.now = clock.Now
	env.statuses = NewStatusStore(db, env.relationships)
	env.statuses.now = clock.Now
	env.queries = NewQueries(db, env.users, env.relationships)
	return env
}

func (env *testEnv) seedUser(t *testing.T, name, email string) string {
	t.Helper()
	user, err := env.users.Create(context.Background(), NewUser{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Image:        "/files/" + name + ".png",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user.ID
}

func (env *testEnv) befriend(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	if err := env.relationships.SendRequest(ctx, a, b); err != nil {
		t.Fatalf("send request %s -> %s: %v", a, b, err)
	}
	if err := env.relationships.Accept(ctx, a, b); err != nil {
		t.Fatalf("accept %s -> %s: %v", a, b, err)
	}
}
