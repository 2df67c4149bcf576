package auth

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, identity *Identity) (*Identity, error) {
	args := m.Called(ctx, identity)
	if fn, ok := args.Get(0).(func(*Identity) *Identity); ok {
		return fn(identity), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

// MockVerifier is a mock implementation of TokenVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token string) (*Payload, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payload), args.Error(1)
}

// recordingRecorder collects outcomes for assertions.
type recordingRecorder struct {
	mu            sync.Mutex
	signups       []string
	logins        []string
	verifications []string
}

func (r *recordingRecorder) ObserveSignup(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signups = append(r.signups, outcome)
}

func (r *recordingRecorder) ObserveLogin(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, outcome)
}

func (r *recordingRecorder) ObserveTokenVerification(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifications = append(r.verifications, outcome)
}
