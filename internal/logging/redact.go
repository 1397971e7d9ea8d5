// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package logging

// SanitizeToken masks a backend token, keeping the first and last 4 characters.
//
//	"1489219787082-4a0e1b7c-5b4d-4f9e-a1d5-52a4f0d3c6e2" -> "1489...c6e2"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// Truncate shortens s to maxLen bytes, appending an ellipsis when cut.
// Used for backend response bodies echoed into error logs.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
