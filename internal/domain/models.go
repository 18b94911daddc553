package domain

// Record represents a single user in the directory
type Record struct {
	ID      int
	Name    string
	Email   string
	Company Company
}

// Company is the employer shown on a user card
type Company struct {
	Name string
}

// FetchStatus tags which variant of FetchState holds
type FetchStatus int

const (
	StatusPending FetchStatus = iota
	StatusReady
	StatusFailed
)

// String returns a lowercase name for logs
func (s FetchStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchState is the tri-state status of the directory load.
// Records is only meaningful when Status is StatusReady and Message only
// when Status is StatusFailed.
type FetchState struct {
	Status  FetchStatus
	Records []Record
	Message string
}

// Pending returns the state held while no data has arrived yet
func Pending() FetchState {
	return FetchState{Status: StatusPending}
}

// Ready returns the state holding a successfully fetched sequence
func Ready(records []Record) FetchState {
	return FetchState{Status: StatusReady, Records: records}
}

// Failed returns the state describing why the last attempt failed
func Failed(message string) FetchState {
	return FetchState{Status: StatusFailed, Message: message}
}

// IsPending reports whether the load is still outstanding
func (s FetchState) IsPending() bool { return s.Status == StatusPending }

// IsReady reports whether records are available
func (s FetchState) IsReady() bool { return s.Status == StatusReady }

// IsFailed reports whether the last attempt failed
func (s FetchState) IsFailed() bool { return s.Status == StatusFailed }
