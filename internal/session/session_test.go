package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/events"
)

type fakeAuth struct {
	resp domain.AuthResponse
	err  error
}

func (f fakeAuth) SignIn(context.Context, string, string) (domain.AuthResponse, error) {
	return f.resp, f.err
}

func TestSignInSignOut(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	var seen []any
	bus.On(AuthChanged, func(p any) { seen = append(seen, p) })

	store := &MemoryStore{}
	s := New(fakeAuth{resp: domain.AuthResponse{ID: 1, Username: "ana", Token: "jwt"}}, store, bus)
	if err := s.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Fatal("fresh session must be signed out")
	}

	if _, err := s.SignIn(ctx, "ana", "pw"); err != nil {
		t.Fatal(err)
	}
	if s.Token() != "jwt" {
		t.Fatalf("token=%q", s.Token())
	}
	if u, ok := s.User(); !ok || u.Username != "ana" {
		t.Fatalf("user=%+v", u)
	}

	restored := New(fakeAuth{}, store, events.NewBus())
	if err := restored.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if restored.Token() != "jwt" {
		t.Fatal("credentials not restored")
	}

	if err := s.SignOut(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Fatal("still authenticated")
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("store not cleared: %v", err)
	}
	if len(seen) != 2 || seen[1] != nil {
		t.Fatalf("events=%v", seen)
	}
	if a, ok := seen[0].(*domain.AuthResponse); !ok || a.Token != "jwt" {
		t.Fatalf("sign-in payload=%v", seen[0])
	}
}

func TestSignInFailureKeepsState(t *testing.T) {
	boom := errors.New("401")
	bus := events.NewBus()
	bus.On(AuthChanged, func(any) { t.Fatal("unexpected event") })
	s := New(fakeAuth{err: boom}, &MemoryStore{}, bus)
	if _, err := s.SignIn(context.Background(), "ana", "bad"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("authenticated after failure")
	}
}
