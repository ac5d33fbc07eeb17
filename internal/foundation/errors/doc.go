// Package errors provides the classified error primitives used across odlsite.
//
// Errors carry a category (what failed), a severity (how bad it is) and a retry
// strategy, plus structured context that ends up in logs. Handlers never format
// status codes themselves; they hand the error to an HTTPErrorAdapter which maps
// the category to a status and writes the public `{"error": ...}` payload.
//
// Example usage:
//
//	err := errors.UpstreamError("email provider rejected message").
//		WithContext("provider", "resend").
//		WithCause(sendErr).
//		Build()
package errors
