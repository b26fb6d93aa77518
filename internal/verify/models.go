package verify

import (
	"time"

	"peselgate/pkg/pesel"
)

// Result is the outcome of verifying one PESEL. It carries everything a
// caller may act on without ever holding the raw number: the subject is
// identified by its HMAC pseudonym only.
type Result struct {
	SubjectHash string       `json:"subject_hash"`
	Valid       bool         `json:"valid"`
	Reason      pesel.Reason `json:"reason,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	DateOfBirth string       `json:"date_of_birth,omitempty"`
	CenturyBand string       `json:"century_band,omitempty"`
	CheckedAt   time.Time    `json:"checked_at"`
}
