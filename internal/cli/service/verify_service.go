package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"PassLocker/internal/cli/auth"
)

// Пределы воркфлоу подтверждения email.
const (
	// DefaultVerifyPollInterval — период опроса состояния подтверждения.
	DefaultVerifyPollInterval = 5 * time.Second
	// DefaultVerifyWindow — окно действия ссылки подтверждения; по его
	// истечении брошенная регистрация удаляется.
	DefaultVerifyWindow = time.Hour
)

// ErrVerificationExpired сигнализирует, что окно подтверждения истекло и
// неподтверждённая учётная запись была удалена.
var ErrVerificationExpired = errors.New("verification window expired, registration removed")

// VerifierGateway — часть identity-границы для воркфлоу подтверждения.
type VerifierGateway interface {
	Reload(ctx context.Context) (string, error)
	SendVerificationEmail(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// VerifyService опрашивает identity-провайдер до подтверждения email.
// Все таймеры останавливаются при выходе из Wait — и при успехе, и при
// отмене контекста: ничего не продолжает тикать после teardown.
type VerifyService struct {
	identity VerifierGateway
	log      *zap.SugaredLogger

	PollInterval time.Duration
	Window       time.Duration
}

func NewVerifyService(identity VerifierGateway, log *zap.SugaredLogger) *VerifyService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &VerifyService{
		identity:     identity,
		log:          log,
		PollInterval: DefaultVerifyPollInterval,
		Window:       DefaultVerifyWindow,
	}
}

// Resend повторно отправляет письмо подтверждения.
func (s *VerifyService) Resend(ctx context.Context) error {
	return s.identity.SendVerificationEmail(ctx)
}

// checkVerified делает Reload и читает флаг подтверждения из свежих claims.
func (s *VerifyService) checkVerified(ctx context.Context) (bool, error) {
	token, err := s.identity.Reload(ctx)
	if err != nil {
		return false, err
	}
	u, err := auth.ParseSession(token)
	if err != nil {
		return false, err
	}
	return u.EmailVerified, nil
}

// Wait блокируется до подтверждения email, истечения окна или отмены
// контекста. По истечении окна неподтверждённая учётная запись удаляется
// и возвращается ErrVerificationExpired.
func (s *VerifyService) Wait(ctx context.Context) error {
	// первый чек сразу: пользователь мог подтвердить email заранее
	verified, err := s.checkVerified(ctx)
	if err != nil {
		return err
	}
	if verified {
		return nil
	}

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()
	expiry := time.NewTimer(s.Window)
	defer expiry.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-expiry.C:
			s.log.Infow("verification window expired, removing registration")
			if err := s.identity.DeleteAccount(ctx); err != nil {
				s.log.Errorw("cleanup of expired registration failed", "error", err)
			}
			return ErrVerificationExpired
		case <-ticker.C:
			verified, err := s.checkVerified(ctx)
			if err != nil {
				// переходящий сбой опроса не прерывает ожидание
				s.log.Warnw("verification poll failed", "error", err)
				continue
			}
			if verified {
				return nil
			}
		}
	}
}
