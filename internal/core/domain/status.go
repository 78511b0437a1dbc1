// internal/core/domain/status.go
package domain

import "time"

// Mode is the persistence state of the synchronizing store.
type Mode string

// Mode constants
const (
	ModeUninitialized Mode = "uninitialized"
	ModeOnline        Mode = "online"
	ModeOffline       Mode = "offline"
	ModeSetupRequired Mode = "setup_required"
)

// ProbeStatus is the outcome of a remote connectivity check.
type ProbeStatus int

const (
	ProbeUnavailable ProbeStatus = iota
	ProbeOK
	ProbeSchemaMissing
)

func (p ProbeStatus) String() string {
	switch p {
	case ProbeOK:
		return "ok"
	case ProbeSchemaMissing:
		return "schema_missing"
	default:
		return "unavailable"
	}
}

// EnvironmentInfo describes the remote configuration with credentials masked.
type EnvironmentInfo struct {
	RemoteConfigured bool   `json:"remoteConfigured"`
	RemoteHost       string `json:"remoteHost,omitempty"`
	RemoteDatabase   string `json:"remoteDatabase,omitempty"`
	RemoteUser       string `json:"remoteUser,omitempty"`
	LocalDriver      string `json:"localDriver"`
}

// StoreStatus is a point-in-time view of the store for status endpoints.
type StoreStatus struct {
	Mode            Mode            `json:"mode"`
	Online          bool            `json:"online"`
	Batches         int             `json:"batches"`
	Engines         int             `json:"engines"`
	LastRemoteError string          `json:"lastRemoteError,omitempty"`
	LastChange      time.Time       `json:"lastChange,omitempty"`
	Environment     EnvironmentInfo `json:"environment"`
}

// MaskSecret keeps a short prefix of s and hides the rest.
func MaskSecret(s string, keep int) string {
	if s == "" {
		return ""
	}
	if len(s) <= keep {
		return "***"
	}
	return s[:keep] + "..."
}
