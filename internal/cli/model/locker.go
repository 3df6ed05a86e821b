package model

// Locker - base locker model as served by the document API.
// Password is always ciphertext here; decryption happens only at the
// presentation boundary.
type Locker struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LockerPatch — частичное обновление документа. Nil-поля не меняются.
// Password, если задан, обязан уже быть шифртекстом.
type LockerPatch struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}
