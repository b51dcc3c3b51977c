// Package domain defines the types and interfaces for the live service
package domain

import (
	"mouthwash/internal/core/window"
)

// Event is one live detection as fanned out to subscribers and persisted
type Event = window.Event
