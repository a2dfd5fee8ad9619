package seal

// scoreboard holds the current score and the session high score.
type scoreboard struct {
	score int
	high  int
}

// reset starts a new run. The high score survives.
func (s *scoreboard) reset() {
	s.score = 0
}

// add credits n pass events. The high score sees the new score in the
// same tick.
func (s *scoreboard) add(n int) {
	if n <= 0 {
		return
	}
	s.score += n
	s.high = max(s.high, s.score)
}
