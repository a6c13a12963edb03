package types

import "github.com/angelmondragon/storefront/pkg/notify"

// SuccessEnvelope wraps every successful payload. Notice carries the message
// the storefront shows the user after a transition, when there is one.
type SuccessEnvelope struct {
	Data   any            `json:"data"`
	Notice *notify.Notice `json:"notice,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
