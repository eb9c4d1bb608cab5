package gates

import (
	"fmt"

	"github.com/vovakirdan/gates/internal/physics"
)

// ScoreTracker owns the score counter. It is the only writer.
type ScoreTracker struct {
	threshold float64
	reg       *Registry
	world     *physics.World
	score     int
}

// NewScoreTracker creates a tracker that scores gates crossing threshold.
func NewScoreTracker(threshold float64, reg *Registry, world *physics.World) *ScoreTracker {
	return &ScoreTracker{threshold: threshold, reg: reg, world: world}
}

// Score returns the current count.
func (s *ScoreTracker) Score() int {
	return s.score
}

// Reset zeroes the counter.
func (s *ScoreTracker) Reset() {
	s.score = 0
}

// Update scores each active trigger that has crossed the threshold exactly
// once and returns the number of gates scored.
func (s *ScoreTracker) Update() int {
	scored := 0
	for _, h := range s.reg.AllScoreTriggers() {
		e := s.reg.Get(h)
		if !e.Trigger {
			continue
		}
		if pos, ok := s.world.Position(e.Body); ok && pos.X < s.threshold {
			e.Trigger = false
			s.score++
			scored++
		}
	}
	return scored
}

// Label returns the text shown by the score label.
func (s *ScoreTracker) Label() string {
	return fmt.Sprintf("Score: %d", s.score)
}
