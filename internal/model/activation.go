package model

type ActivationCode struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	MaxUses     int    `json:"max_uses"`
	CurrentUses int    `json:"current_uses"`
	ExpiresAt   int64  `json:"expires_at,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedBy   int64  `json:"created_by"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}

func (a *ActivationCode) RemainingUses() int {
	return a.MaxUses - a.CurrentUses
}

type UserActivation struct {
	ID               int64 `json:"id"`
	UserID           int64 `json:"user_id"`
	ActivationCodeID int64 `json:"activation_code_id"`
	UsedAt           int64 `json:"used_at"`
}
