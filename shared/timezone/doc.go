// Package timezone keeps every timestamp the service produces in one business timezone.
//
// The zone comes from APP_TIMEZONE and defaults to Asia/Ho_Chi_Minh. It is loaded when the
// package is imported:
//
//	now := timezone.Now()
//	day, err := timezone.ParseDate("2025-03-01")
package timezone
