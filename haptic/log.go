package haptic

import "github.com/vidscrub/vidscrub/log"

// Log writes every event to the application log at debug level.
type Log struct{}

func (Log) DragStart()       { log.Debug("haptic: drag start") }
func (Log) DragEnd()         { log.Debug("haptic: drag end") }
func (Log) BoundaryReached() { log.Debug("haptic: boundary reached") }
func (Log) PeriodicFeedback(intensity float64) {
	log.Debugf("haptic: periodic feedback (%.2f)", intensity)
}
