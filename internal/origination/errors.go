package origination

import "errors"

// Service errors
var (
	ErrMissingAppID   = errors.New("application id is required")
	ErrMissingMobile  = errors.New("mobile number is required")
	ErrInvalidOTP     = errors.New("invalid otp code")
	ErrUnauthorized   = errors.New("origination api rejected the bearer token")
	ErrEmptyPayload   = errors.New("origination api returned no usable data")
	ErrPincodeUnknown = errors.New("pincode not found")
)

// APIError is a structured error response from the origination API. Its
// message is human-readable and surfaced verbatim to the operator.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "origination api error"
}

// IsAPIError reports whether err is a structured API error, as opposed to
// a transport failure or a malformed payload.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// AsAPIError returns the structured API error inside err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
