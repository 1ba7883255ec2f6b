/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrUpgradeRequired:   {Code: ErrUpgradeRequired, Message: "Request isn't trying to upgrade to websocket.", Status: http.StatusUpgradeRequired},

	// 2xxx: Frame and Relay Errors
	ErrInvalidFrame:    {Code: ErrInvalidFrame, Message: "Frame is not valid JSON: %v"},
	ErrMissingIdentity: {Code: ErrMissingIdentity, Message: "Frame has no client id."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
