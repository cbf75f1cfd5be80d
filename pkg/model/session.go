package model

// VaultState represents the lock state of the local vault.
type VaultState string

const (
	VaultLocked   VaultState = "locked"
	VaultUnlocked VaultState = "unlocked"
)

// UsageMetrics holds process-lifetime counters for vault activity.
// BytesEncrypted counts plaintext bytes of completed writes only.
type UsageMetrics struct {
	BytesEncrypted uint64
}

// StatusSnapshot is a point-in-time view of the session for status queries.
// Producing one must never touch the network.
type StatusSnapshot struct {
	State          VaultState
	ActiveIdentity string
	Metrics        UsageMetrics
	SecurityLevel  string
}
