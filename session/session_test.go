package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestParseClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := signToken(t, jwt.MapClaims{"id": "u42", "role": "driver", "name": "Kamal", "exp": exp.Unix()})
	c, err := ParseClaims(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != "u42" || c.Role != models.RoleDriver || c.Name != "Kamal" {
		t.Fatalf("claims = %+v", c)
	}
	if !c.ExpiresAt.Equal(exp) {
		t.Fatalf("exp = %s", c.ExpiresAt)
	}

	sub := signToken(t, jwt.MapClaims{"sub": "u7"})
	c, err = ParseClaims(sub)
	if err != nil || c.UserID != "u7" || !c.ExpiresAt.IsZero() {
		t.Fatalf("sub claims = %+v err=%v", c, err)
	}

	if _, err := ParseClaims("not-a-jwt"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestSessionAuthHeaders(t *testing.T) {
	var s *Session
	if len(s.AuthHeaders()) != 0 || s.Authenticated() {
		t.Fatal("nil session must be anonymous")
	}
	s = &Session{Token: "abc"}
	if s.AuthHeaders()["Authorization"] != "Bearer abc" {
		t.Fatalf("headers = %v", s.AuthHeaders())
	}
}

func TestManagerLoginRotatesAndPublishes(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewManager(NewMemoryStore(), 24*time.Hour, WithClock(fixedClock(now)))

	var events []Event
	unsubscribe := m.Subscribe(func(ev Event) { events = append(events, ev) })

	ctx := context.Background()
	tok := signToken(t, jwt.MapClaims{"id": "u1", "role": "customer", "exp": now.Add(2 * time.Hour).Unix()})
	first, err := m.Login(ctx, "", tok, &models.User{ID: "u1", Name: "Nimal", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !first.ExpiresAt.Equal(now.Add(2 * time.Hour)) {
		t.Fatalf("expiry should follow the token exp, got %s", first.ExpiresAt)
	}

	second, err := m.Login(ctx, first.ID, tok, nil)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("login must issue a fresh session id")
	}
	if _, err := m.Current(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("previous session should be gone, got %v", err)
	}
	if second.User.ID != "u1" || second.User.Role != models.RoleCustomer {
		t.Fatalf("user from claims = %+v", second.User)
	}

	if err := m.Logout(ctx, second.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := m.Current(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("logged out session still present: %v", err)
	}

	want := []Event{
		{Type: EventLogin, SessionID: first.ID},
		{Type: EventLogin, SessionID: second.ID, PreviousID: first.ID},
		{Type: EventLogout, SessionID: second.ID},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}

	unsubscribe()
	unsubscribe()
	if _, err := m.Login(ctx, "", tok, nil); err != nil {
		t.Fatal(err)
	}
	if len(events) != len(want) {
		t.Fatal("unsubscribed listener still notified")
	}
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewManager(NewMemoryStore(), time.Hour, WithClock(fixedClock(now)))
	tok := signToken(t, jwt.MapClaims{"id": "u1", "exp": now.Add(-time.Minute).Unix()})
	if _, err := m.Login(context.Background(), "", tok, nil); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManagerOpaqueTokenNeedsUser(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()
	if _, err := m.Login(ctx, "", "opaque", nil); err == nil {
		t.Fatal("expected error without user for opaque token")
	}
	s, err := m.Login(ctx, "", "opaque", &models.User{ID: "u3", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.User.Role != models.RoleAdmin {
		t.Fatalf("role = %q", s.User.Role)
	}
}

func TestManagerCurrentDropsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := now
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, WithClock(func() time.Time { return clock }))
	ctx := context.Background()
	s, err := m.Login(ctx, "", "opaque", &models.User{ID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	clock = now.Add(2 * time.Hour)
	if _, err := m.Current(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be absent, got %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("expired session should be deleted from the store")
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestGormStoreRoundTripAndSweep(t *testing.T) {
	store, err := NewGormStore(openTestDB(t))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	live := &Session{ID: "live-id", Token: "tok-live", User: models.User{ID: "u1", Name: "Nimal", Role: models.RoleCustomer}, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &Session{ID: "stale-id", Token: "tok-stale", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []*Session{live, stale} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := store.Get(ctx, "live-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Token != "tok-live" || got.User.Name != "Nimal" || got.User.Role != models.RoleCustomer {
		t.Fatalf("session = %+v", got)
	}

	var rec Record
	if err := store.db.First(&rec, "id_hash = ?", hashID("live-id")).Error; err != nil {
		t.Fatalf("raw lookup: %v", err)
	}
	if rec.IDHash == "live-id" || len(rec.IDHash) != 64 {
		t.Fatalf("id stored in clear: %q", rec.IDHash)
	}

	n, err := store.DeleteExpired(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("sweep removed %d (err %v)", n, err)
	}
	if _, err := store.Get(ctx, "stale-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale session survived sweep: %v", err)
	}
	if err := store.Delete(ctx, "live-id"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "live-id"); !errors.Is(err, ErrNotFound) {
		t.Fatal("deleted session still present")
	}
}
