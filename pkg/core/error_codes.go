package core

import "net/http"

// IsAuthError reports whether the exchange rejected the credentials or signature.
func IsAuthError(err error) bool {
	code := StatusCode(err)
	return IsProtocolError(err) && (code == http.StatusUnauthorized || code == http.StatusForbidden)
}

// IsNotFound reports whether the exchange answered 404, e.g. for an unknown order id.
func IsNotFound(err error) bool {
	return IsProtocolError(err) && StatusCode(err) == http.StatusNotFound
}

// IsThrottled reports whether the exchange answered 429.
func IsThrottled(err error) bool {
	return IsProtocolError(err) && StatusCode(err) == http.StatusTooManyRequests
}

// IsServerError reports whether the exchange answered with a 5xx status.
func IsServerError(err error) bool {
	return IsProtocolError(err) && StatusCode(err) >= http.StatusInternalServerError
}
