package input

import "sync"

// Controls is the normalized input snapshot read by the thrust system
type Controls struct {
	Thrust  bool
	Brake   bool
	Primary bool // click/tap outside the control pad since the last read
}

// Cell is the single-writer/single-reader hand-off between event handlers
// and the frame driver. Writes are last-write-wins; nothing is queued, so an
// event that lands mid-tick is seen on the next read.
type Cell struct {
	mu      sync.Mutex
	thrust  bool
	brake   bool
	primary bool
}

// NewCell returns an empty controls cell
func NewCell() *Cell {
	return &Cell{}
}

// SetThrust records whether the thrust control is held
func (c *Cell) SetThrust(held bool) {
	c.mu.Lock()
	c.thrust = held
	c.mu.Unlock()
}

// SetBrake records whether the brake control is held
func (c *Cell) SetBrake(held bool) {
	c.mu.Lock()
	c.brake = held
	c.mu.Unlock()
}

// Set overwrites both held controls at once
func (c *Cell) Set(thrust, brake bool) {
	c.mu.Lock()
	c.thrust = thrust
	c.brake = brake
	c.mu.Unlock()
}

// Press latches a primary action until the next TakePrimary
func (c *Cell) Press() {
	c.mu.Lock()
	c.primary = true
	c.mu.Unlock()
}

// Snapshot returns the held controls without consuming the primary edge
func (c *Cell) Snapshot() Controls {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Controls{Thrust: c.thrust, Brake: c.brake, Primary: c.primary}
}

// TakePrimary reports and clears the primary-action edge
func (c *Cell) TakePrimary() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.primary
	c.primary = false
	return p
}
