package feed

import (
	"errors"
	"fmt"
	"time"
)

// ResetTimeLayout formats the rate-limit reset time shown to the user
const ResetTimeLayout = "3:04:05 PM MST"

var (
	ErrAlreadyLoaded  = errors.New("feed already loaded")
	ErrClosed         = errors.New("feed closed")
	ErrNotReady       = errors.New("feed not ready")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrUnknownTab     = errors.New("unknown tab")
)

// Kind classifies a failed load
type Kind int

const (
	KindRateLimited Kind = iota + 1
	KindAccessDenied
	KindNotFound
	KindUnexpectedStatus
	KindNetworkFailure
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAccessDenied:
		return "access_denied"
	case KindNotFound:
		return "not_found"
	case KindUnexpectedStatus:
		return "unexpected_status"
	case KindNetworkFailure:
		return "network_failure"
	case KindEmpty:
		return "empty"
	}
	return "unknown"
}

// Error is the terminal failure of a load. It is reported, never retried.
type Error struct {
	Kind       Kind
	Account    string
	StatusCode int
	StatusText string
	ResetAt    time.Time
	Err        error
}

// RateLimited builds a KindRateLimited error
func RateLimited(account string, resetAt time.Time) *Error {
	return &Error{Kind: KindRateLimited, Account: account, StatusCode: 403, ResetAt: resetAt}
}

// AccessDenied builds a KindAccessDenied error
func AccessDenied(account string) *Error {
	return &Error{Kind: KindAccessDenied, Account: account, StatusCode: 403}
}

// NotFound builds a KindNotFound error
func NotFound(account string) *Error {
	return &Error{Kind: KindNotFound, Account: account, StatusCode: 404}
}

// UnexpectedStatus builds a KindUnexpectedStatus error
func UnexpectedStatus(account string, code int, text string) *Error {
	return &Error{Kind: KindUnexpectedStatus, Account: account, StatusCode: code, StatusText: text}
}

// NetworkFailure builds a KindNetworkFailure error wrapping the transport cause
func NetworkFailure(account string, err error) *Error {
	return &Error{Kind: KindNetworkFailure, Account: account, Err: err}
}

// Empty builds a KindEmpty error
func Empty(account string) *Error {
	return &Error{Kind: KindEmpty, Account: account}
}

// Message returns the user-facing text, with the reset time in loc.
func (e *Error) Message(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	switch e.Kind {
	case KindRateLimited:
		if e.ResetAt.IsZero() {
			return "GitHub API rate limit exceeded. Please try again later."
		}
		return fmt.Sprintf("GitHub API rate limit exceeded. Please try again after %s.",
			e.ResetAt.In(loc).Format(ResetTimeLayout))
	case KindAccessDenied:
		return "Access to the GitHub API was denied. Please try again later."
	case KindNotFound:
		return fmt.Sprintf("GitHub user %q was not found.", e.Account)
	case KindUnexpectedStatus:
		return fmt.Sprintf("Failed to fetch repositories: %d %s", e.StatusCode, e.StatusText)
	case KindNetworkFailure:
		return "Failed to fetch repositories. Check your connection and try again."
	case KindEmpty:
		return fmt.Sprintf("No public repositories to show for %s yet.", e.Account)
	}
	return "An unknown error occurred."
}

func (e *Error) Error() string {
	msg := e.Message(time.Local)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
