package models

// ============================================================
// Queue & Appointments collections
// ============================================================

// QueueState is the singleton queue document.
// Invariant: 0 <= CurrentToken <= LastToken.
type QueueState struct {
	LastToken         int `json:"lastToken"`
	CurrentToken      int `json:"currentToken"`
	AvgTimePerPatient int `json:"avgTimePerPatient"`
}

// Waiting returns the number of issued tokens not yet called
func (q QueueState) Waiting() int {
	return q.LastToken - q.CurrentToken
}

// Appointment represents one element of the appointments collection
type Appointment struct {
	ID         int64  `json:"id"`
	Patient    string `json:"patient"`
	Department string `json:"department"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
}
