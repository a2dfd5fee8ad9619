package seal

import (
	"testing"
	"time"

	"github.com/FUCKiro/flappyseal-app/internal/config"
	"pgregory.net/rapid"
)

func TestIntegrationOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := rapid.Float64Range(100, 400).Draw(t, "y")
		v := rapid.Float64Range(-7, 7).Draw(t, "v")

		m, err := New(config.DefaultSealConfig(), WithRand(gapAt200))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		if _, err := m.Start(); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		m.mu.Lock()
		m.actor.Y, m.actor.Vel = y, v
		m.mu.Unlock()

		snap := m.Tick()
		if snap.Actor.Y != y+v {
			t.Fatalf("Y = %v, expected %v", snap.Actor.Y, y+v)
		}
		if snap.Actor.Vel != v+0.4 {
			t.Fatalf("Vel = %v, expected %v", snap.Actor.Vel, v+0.4)
		}
	})
}

func TestHighScoreMonotoneProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		seed := rapid.Uint64().Draw(t, "seed")
		m, err := New(config.DefaultSealConfig(),
			WithClock(clock),
			WithRand(&splitmix{state: seed}),
			WithBounds(Bounds{Width: 160, Height: 600}),
		)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		high := 0
		ops := rapid.SliceOfN(rapid.IntRange(0, 40), 1, 200).Draw(t, "ops")
		for _, op := range ops {
			// 0 = tap, n = n ticks with 20ms between them
			if op == 0 {
				m.Jump()
				continue
			}
			for i := 0; i < op; i++ {
				clock.Advance(20 * time.Millisecond)
				snap := m.Tick()
				if snap.HighScore < high {
					t.Fatalf("high score dropped from %d to %d", high, snap.HighScore)
				}
				if snap.HighScore < snap.Score {
					t.Fatalf("high score %d below score %d", snap.HighScore, snap.Score)
				}
				high = snap.HighScore
			}
		}
	})
}

func TestPassFlagIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := config.DefaultSealConfig()
		speed := rapid.Float64Range(0.5, 9).Draw(t, "speed")
		actorX := rapid.Float64Range(10, 300).Draw(t, "actorX")
		b := Bounds{Width: rapid.Float64Range(100, 900).Draw(t, "width"), Height: 600}
		f := newField(cfg.Obstacles, speed, &splitmix{state: 7})

		credited := 0
		culled := 0
		ticks := rapid.IntRange(1, 800).Draw(t, "ticks")
		for i := 0; i < ticks; i++ {
			before := len(f.obstacles)
			f.advance(b)
			spawned := 0
			if n := len(f.obstacles); n > 0 && f.obstacles[n-1].X == b.Width {
				spawned = 1
			}
			culled += before + spawned - len(f.obstacles)
			credited += f.markPassed(actorX)
		}

		// Every credit belongs to exactly one obstacle, and every culled
		// obstacle had already been passed.
		flagged := 0
		for _, o := range f.obstacles {
			if o.Passed {
				flagged++
			}
		}
		if credited != flagged+culled {
			t.Fatalf("credited %d passes, expected %d flagged + %d culled", credited, flagged, culled)
		}
	})
}

func TestDebounceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := debouncer{interval: 200 * time.Millisecond}
		now := time.Unix(0, 0)
		var last time.Time
		first := true

		gaps := rapid.SliceOfN(rapid.IntRange(0, 400), 1, 50).Draw(t, "gaps")
		for _, g := range gaps {
			now = now.Add(time.Duration(g) * time.Millisecond)
			want := first || now.Sub(last) >= 200*time.Millisecond
			if got := d.ready(now); got != want {
				t.Fatalf("ready(+%dms) = %v, expected %v", now.Sub(last).Milliseconds(), got, want)
			}
			if want {
				d.accept(now)
				last, first = now, false
			}
		}
	})
}

// splitmix is a tiny deterministic Rand for property tests.
type splitmix struct {
	state uint64
}

func (s *splitmix) Float64() float64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}
