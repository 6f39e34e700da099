package model

// Status is the verdict attached to a scanned domain.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusCaution Status = "caution"
	StatusUnsafe  Status = "unsafe"
	StatusUnknown Status = "unknown"

	// UI-only states. The engine never produces these.
	StatusIdle     Status = "idle"
	StatusScanning Status = "scanning"
)

// ScanResult is the verdict for one scan request. It is built once by the
// composer and not modified afterwards.
type ScanResult struct {
	Domain            string   `json:"domain"`
	Status            Status   `json:"status"`
	Details           []string `json:"details"`
	Registrar         string   `json:"registrar"`
	DNSSEC            bool     `json:"dnssec"`
	IsOfflineVerified bool     `json:"isOfflineVerified"`
}

type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Result    string `json:"result"`
}
