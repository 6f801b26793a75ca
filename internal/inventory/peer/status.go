package peer

// Status is the lifecycle state of a peer.
type Status string

const (
	// StatusPending marks a peer that exists in the inventory but has not
	// been observed online. Imported and newly created peers start here.
	StatusPending Status = "pending"
	// StatusConnected marks a peer with a recent handshake.
	StatusConnected Status = "connected"
	// StatusDisconnected marks a peer that went quiet.
	StatusDisconnected Status = "disconnected"
	// StatusDisabled marks a peer an operator switched off.
	StatusDisabled Status = "disabled"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConnected, StatusDisconnected, StatusDisabled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
