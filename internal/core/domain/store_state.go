package domain

import "fmt"

// LoadState is the lifecycle state of the negotiation store.
type LoadState int

const (
	LoadUninitialized LoadState = iota
	LoadLoading
	LoadReady
	LoadFailed
)

var loadStateNames = map[LoadState]string{
	LoadUninitialized: "UNINITIALIZED",
	LoadLoading:       "LOADING",
	LoadReady:         "READY",
	LoadFailed:        "FAILED",
}

func (s LoadState) String() string {
	if name, ok := loadStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// MarshalText encodes the state name for JSON responses.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StoreStatus is the externally visible state of the store.
// Message is only set when State is LoadFailed.
type StoreStatus struct {
	State   LoadState `json:"state"`
	Message string    `json:"message,omitempty"`
	Count   int       `json:"count"`   // Records currently held
	Version uint64    `json:"version"` // Snapshot version
}
