package service

import (
	"context"
	"errors"
	"fmt"

	"PassLocker/internal/cli/api"
	"PassLocker/internal/cli/crypto"
	"PassLocker/internal/cli/repo"
)

// Ошибки PIN-воркфлоу. Тексты показываются пользователю как есть.
var (
	ErrPinTooShort        = errors.New("PIN must be at least 4 digits.")
	ErrPinConfirmMismatch = errors.New("PINs do not match.")
	ErrIncorrectPin       = errors.New("Incorrect PIN.")
	ErrIncorrectPassword  = errors.New("Incorrect password.")
)

// Reauthenticator — часть identity-границы, нужная recovery-потоку:
// повторное подтверждение пароля учётной записи.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context, password string) error
}

// PinService управляет единственным PIN-документом пользователя и
// реализует гейт поверх чувствительных действий. Состояния: NoPin
// (документа нет, гейт прозрачен) и PinSet (требуется ввод PIN).
type PinService struct {
	pins   repo.PinStore
	reauth Reauthenticator
	key    string
	uid    string

	stored string // шифртекст PIN; "" — NoPin
	loaded bool
}

func NewPinService(pins repo.PinStore, reauth Reauthenticator, key, uid string) *PinService {
	return &PinService{pins: pins, reauth: reauth, key: key, uid: uid}
}

// Load читает PIN-документ. Вызывается один раз после входа; до Load
// состояние сервиса неопределено.
func (s *PinService) Load(ctx context.Context) error {
	value, exists, err := s.pins.GetPin(ctx, s.uid)
	if err != nil {
		return fmt.Errorf("load pin: %w", err)
	}
	if exists {
		s.stored = value
	} else {
		s.stored = ""
	}
	s.loaded = true
	return nil
}

// IsSet сообщает, задан ли PIN (после Load).
func (s *PinService) IsSet() bool { return s.stored != "" }

func validatePin(pin, confirm string) error {
	if len(pin) < 4 {
		return ErrPinTooShort
	}
	if pin != confirm {
		return ErrPinConfirmMismatch
	}
	return nil
}

// Setup задаёт новый PIN (первичная установка либо замена после проверки).
func (s *PinService) Setup(ctx context.Context, pin, confirm string) error {
	if err := validatePin(pin, confirm); err != nil {
		return err
	}
	ct, err := crypto.Encrypt(pin, s.key)
	if err != nil {
		return fmt.Errorf("encrypt pin: %w", err)
	}
	if err := s.pins.PutPin(ctx, s.uid, ct); err != nil {
		return fmt.Errorf("save pin: %w", err)
	}
	s.stored = ct
	return nil
}

// Verify сравнивает введённый PIN с сохранённым. Ошибка расшифровки
// эквивалентна несовпадению — её причина пользователю не видна.
func (s *PinService) Verify(entered string) bool {
	if s.stored == "" {
		return false
	}
	plain, err := crypto.Decrypt(s.stored, s.key)
	if err != nil {
		return false
	}
	return plain == entered
}

// Change заменяет PIN, предварительно требуя знание текущего.
func (s *PinService) Change(ctx context.Context, current, newPin, confirm string) error {
	if !s.Verify(current) {
		return ErrIncorrectPin
	}
	return s.Setup(ctx, newPin, confirm)
}

// Require исполняет action под PIN-гейтом: при PinSet сначала запрашивает
// PIN через prompt и сверяет его; при NoPin action выполняется сразу.
// Несовпадение — возвращаемая, не фатальная ошибка.
func (s *PinService) Require(ctx context.Context, prompt func() (string, error), action func() error) error {
	_ = ctx
	if !s.IsSet() {
		return action()
	}
	entered, err := prompt()
	if err != nil {
		return err
	}
	if !s.Verify(entered) {
		return ErrIncorrectPin
	}
	return action()
}

// RecoveryStep — шаг recovery-потока "забыл PIN".
type RecoveryStep int

const (
	// StepVerifyPassword — ожидается пароль учётной записи.
	StepVerifyPassword RecoveryStep = iota
	// StepSetNewPin — пароль подтверждён, ожидается новый PIN.
	StepSetNewPin
)

// Recovery — каноническая машина состояний потока "забыл PIN": вместо
// знания текущего PIN пользователь повторно подтверждает пароль учётной
// записи, после чего задаёт новый PIN.
type Recovery struct {
	svc  *PinService
	step RecoveryStep
}

// StartRecovery начинает recovery-поток с шага проверки пароля.
func (s *PinService) StartRecovery() *Recovery {
	return &Recovery{svc: s, step: StepVerifyPassword}
}

func (r *Recovery) Step() RecoveryStep { return r.step }

// SubmitPassword проверяет пароль учётной записи через identity-границу.
// При неверном пароле поток остаётся на текущем шаге, PIN не меняется.
func (r *Recovery) SubmitPassword(ctx context.Context, password string) error {
	if r.step != StepVerifyPassword {
		return errors.New("unexpected step")
	}
	if err := r.svc.reauth.Reauthenticate(ctx, password); err != nil {
		if errors.Is(err, api.ErrAuth) {
			return ErrIncorrectPassword
		}
		return err
	}
	r.step = StepSetNewPin
	return nil
}

// SubmitNewPin завершает поток, сохраняя новый PIN.
func (r *Recovery) SubmitNewPin(ctx context.Context, pin, confirm string) error {
	if r.step != StepSetNewPin {
		return errors.New("unexpected step")
	}
	return r.svc.Setup(ctx, pin, confirm)
}
