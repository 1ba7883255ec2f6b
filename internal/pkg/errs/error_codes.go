/*
Package errs provides custom error types and application-level error code constants.

These error codes identify request and frame errors both internally within the server
and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrUpgradeRequired indicates that a plain HTTP request hit the WebSocket endpoint.
	ErrUpgradeRequired = 1008
)

// 2xxx: Frame and Relay Errors
const (
	// ErrInvalidFrame indicates that an inbound frame was not valid JSON.
	ErrInvalidFrame = 2001

	// ErrMissingIdentity indicates that an inbound frame carried no client id.
	ErrMissingIdentity = 2002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
