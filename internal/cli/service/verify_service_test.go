package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Reload(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockVerifier) SendVerificationEmail(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockVerifier) DeleteAccount(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ VerifierGateway = (*mockVerifier)(nil)

func TestVerifyService_Wait_AlreadyVerified(t *testing.T) {
	gw := &mockVerifier{}
	gw.On("Reload", mock.Anything).Return(mintIDToken(t, "u1", "a@b.c", true), nil).Once()

	svc := NewVerifyService(gw, nil)
	assert.NoError(t, svc.Wait(context.Background()))
	gw.AssertExpectations(t)
}

func TestVerifyService_Wait_VerifiedOnSecondPoll(t *testing.T) {
	gw := &mockVerifier{}
	gw.On("Reload", mock.Anything).Return(mintIDToken(t, "u1", "a@b.c", false), nil).Once()
	gw.On("Reload", mock.Anything).Return(mintIDToken(t, "u1", "a@b.c", true), nil).Once()

	svc := NewVerifyService(gw, nil)
	svc.PollInterval = 5 * time.Millisecond
	svc.Window = time.Second

	assert.NoError(t, svc.Wait(context.Background()))
	gw.AssertExpectations(t)
}

func TestVerifyService_Wait_WindowExpiry(t *testing.T) {
	gw := &mockVerifier{}
	gw.On("Reload", mock.Anything).Return(mintIDToken(t, "u1", "a@b.c", false), nil)
	gw.On("DeleteAccount", mock.Anything).Return(nil).Once()

	svc := NewVerifyService(gw, nil)
	svc.PollInterval = 5 * time.Millisecond
	svc.Window = 30 * time.Millisecond

	err := svc.Wait(context.Background())
	assert.ErrorIs(t, err, ErrVerificationExpired)
	// брошенная регистрация удалена
	gw.AssertCalled(t, "DeleteAccount", mock.Anything)
}

func TestVerifyService_Wait_ContextCancel(t *testing.T) {
	gw := &mockVerifier{}
	gw.On("Reload", mock.Anything).Return(mintIDToken(t, "u1", "a@b.c", false), nil)

	svc := NewVerifyService(gw, nil)
	svc.PollInterval = time.Hour
	svc.Window = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := svc.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	gw.AssertNotCalled(t, "DeleteAccount", mock.Anything)
}

func TestVerifyService_Resend(t *testing.T) {
	gw := &mockVerifier{}
	gw.On("SendVerificationEmail", mock.Anything).Return(nil).Once()

	svc := NewVerifyService(gw, nil)
	assert.NoError(t, svc.Resend(context.Background()))
	gw.AssertExpectations(t)
}
