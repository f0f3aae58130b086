package parameter

import "time"

// Simulation timing
const (
	// DefaultTickInterval is the scheduler period between simulation ticks
	DefaultTickInterval = 40 * time.Millisecond

	// MinTickInterval rejects configurations that would starve rendering
	MinTickInterval = 5 * time.Millisecond
)

// Grid & world
const (
	// CellSize is the edge length of a grid cell in world pixels
	CellSize = 32

	// DefaultGridWidth is the world width in cells
	DefaultGridWidth = 40

	// DefaultGridHeight is the world height in cells
	DefaultGridHeight = 20

	// RandomPlacementAttempts bounds random placement retries before giving up
	RandomPlacementAttempts = 100
)

// Event & resource limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// SnapshotEvery publishes a debug snapshot every N ticks
	SnapshotEvery = 5

	// SubscriberBuffer is the per-websocket-client outgoing frame buffer
	SubscriberBuffer = 16

	// RecentEvents is the size of the debug event history
	RecentEvents = 64
)
