package quota

import "time"

// Usage is the state of a caller's quota after one request was counted.
type Usage struct {
	Limit     int64     `json:"limit"`
	Count     int64     `json:"count"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int64  `json:"retry_after"`
}
