package gate

import "errors"

// Sentinel errors returned by HybridGate.Authorize.
var (
	ErrUnauthorized = errors.New("gate: unauthorized")
	ErrNoProfile    = errors.New("gate: no profile for subject")
)
