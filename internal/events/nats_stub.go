// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

//go:build !nats

package events

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NewNATSMirror returns an error when NATS dependencies are not available.
// Build with -tags=nats to enable the NATS mirror.
func NewNATSMirror(url string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return nil, fmt.Errorf("NATS publisher not available: build with -tags=nats")
}
