package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/unimindapp/unimind-backend/internal/store"
)

type fakeProfileStore struct {
	profiles map[string]store.UserProfile
	err      error
}

func (f *fakeProfileStore) Get(_ context.Context, userID string) (store.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func TestUserGet(t *testing.T) {
	t.Parallel()

	fs := &fakeProfileStore{profiles: map[string]store.UserProfile{
		"caller": {"displayName": "Ada", "university": "METU"},
	}}
	svc := NewUserService(testLogger(t), fs)

	profile, err := svc.Get(context.Background(), "caller", "caller")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if profile["displayName"] != "Ada" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestUserGetRejectsForeignUser(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testLogger(t), &fakeProfileStore{})
	_, err := svc.Get(context.Background(), "caller", "someone-else")
	if status := apiStatus(t, err); status != http.StatusForbidden {
		t.Fatalf("status: got=%d want=403", status)
	}
}

func TestUserGetMissingProfileIsNotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testLogger(t), &fakeProfileStore{})
	_, err := svc.Get(context.Background(), "caller", "caller")
	if status := apiStatus(t, err); status != http.StatusNotFound {
		t.Fatalf("status: got=%d want=404", status)
	}
}

func TestUserGetStoreFailureIsInternal(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testLogger(t), &fakeProfileStore{err: errors.New("connection reset")})
	_, err := svc.Get(context.Background(), "caller", "caller")
	if status := apiStatus(t, err); status != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=500", status)
	}
}
