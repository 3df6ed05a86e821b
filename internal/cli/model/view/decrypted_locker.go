package view

// DecryptedLocker — DTO для отображения записи с расшифрованным паролем.
// Если расшифровать пароль не удалось, Password содержит исходный шифртекст
// и Degraded выставлен в true; остальные записи списка при этом не страдают.
type DecryptedLocker struct {
	ID       string
	Name     string
	Username string
	Password string
	Degraded bool
}
