package places

import "slices"

// Status is the textual status field of every places API response
type Status string

const (
	// StatusOK indicates at least one result was returned
	StatusOK Status = "OK"
	// StatusZeroResults indicates a valid request with an empty result set
	StatusZeroResults Status = "ZERO_RESULTS"
	// StatusOverQueryLimit indicates the key is over its quota
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	// StatusRequestDenied indicates the request was rejected, usually a bad key
	StatusRequestDenied Status = "REQUEST_DENIED"
	// StatusInvalidRequest indicates a missing parameter or a page token that
	// is not valid yet
	StatusInvalidRequest Status = "INVALID_REQUEST"
	// StatusUnknownError indicates a server side error
	StatusUnknownError Status = "UNKNOWN_ERROR"
	// StatusNotFound indicates the referenced spot does not exist
	StatusNotFound Status = "NOT_FOUND"
)

// Outcome is the classification of a Status
type Outcome int

const (
	// OutcomeFatal means the status is an error that must not be retried
	OutcomeFatal Outcome = iota
	// OutcomeOK means results are available
	OutcomeOK
	// OutcomeZeroResults means an empty, successful result set
	OutcomeZeroResults
	// OutcomeRetryable means the status is in the caller's retryable set
	OutcomeRetryable
)

// String returns the string representation of an Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeZeroResults:
		return "zero_results"
	case OutcomeRetryable:
		return "retryable"
	default:
		return "fatal"
	}
}

// Classify maps the status to an Outcome. Only statuses listed in retryable
// are ever reported as OutcomeRetryable; OK and ZERO_RESULTS never are.
func (s Status) Classify(retryable []Status) Outcome {
	switch s {
	case StatusOK:
		return OutcomeOK
	case StatusZeroResults:
		return OutcomeZeroResults
	}
	if slices.Contains(retryable, s) {
		return OutcomeRetryable
	}
	return OutcomeFatal
}

// IsKnown reports whether the status is one the API documents
func (s Status) IsKnown() bool {
	switch s {
	case StatusOK, StatusZeroResults, StatusOverQueryLimit, StatusRequestDenied,
		StatusInvalidRequest, StatusUnknownError, StatusNotFound:
		return true
	}
	return false
}
