package core

// Participant is a connection's membership and vote state within a
// room. Vote is non-nil exactly when HasVoted is true.
type Participant struct {
	ConnID   string
	Name     string
	Vote     *float64
	HasVoted bool
}
