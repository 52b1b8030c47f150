package models

import "time"

// ============================================================
// Accounts collection
// ============================================================

// TokenDateLayout is the layout of TokenEntry.Date
const TokenDateLayout = "2006-01-02 15:04:05"

// TokenEntry is one issued queue number in a patient's history
type TokenEntry struct {
	Token int    `json:"token"`
	Date  string `json:"date"`
}

// Account represents one element of the accounts collection
type Account struct {
	Username   string       `json:"username"`
	Password   string       `json:"password"`
	Role       string       `json:"role"`
	Department string       `json:"department,omitempty"`
	Tokens     []TokenEntry `json:"tokens,omitempty"`
}

// AccountResponse DTO, never carries the credential
type AccountResponse struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	TokenCount int    `json:"token_count"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		Username:   a.Username,
		Role:       a.Role,
		Department: a.Department,
		TokenCount: len(a.Tokens),
	}
}

// ============================================================
// Sessions collection
// ============================================================

// RevokedSession marks a signed session id as logged out until it expires
type RevokedSession struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (s *RevokedSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
