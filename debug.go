package reveal

import (
	"time"

	"go.uber.org/zap"
)

// SetDebugMode enables or disables per-recalculation stats at debug level.
func (c *Coordinator) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// debugLog records how long a recalculation took and what it rebuilt.
func (c *Coordinator) debugLog(reason string, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("reason", reason),
		zap.Uint64("generation", c.generation),
		zap.Int("triggers", len(c.registry.triggers)),
		zap.Float64("docHeight", c.doc.Height()),
		zap.Duration("elapsed", elapsed),
	}
	if c.tracker != nil {
		start, end := c.tracker.Bounds()
		fields = append(fields, zap.Float64("trackStart", start), zap.Float64("trackEnd", end))
	}
	c.log.Debug("recalc", fields...)
}

// debugCheckPanels logs at warn level if the accordion ever holds more than
// one open panel. Only called in debug mode.
func (c *Coordinator) debugCheckPanels() {
	if c.accordion == nil {
		return
	}
	if n := c.accordion.OpenCount(); n > 1 {
		c.log.Warn("accordion invariant violated", zap.Int("open", n))
	}
}
