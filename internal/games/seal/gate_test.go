package seal

import (
	"testing"
	"time"

	"github.com/FUCKiro/flappyseal-app/internal/games/seal/mocks"
	"github.com/FUCKiro/flappyseal-app/internal/identity"
	"go.uber.org/mock/gomock"
)

// scoreOne plays until the first obstacle is passed, then crashes into the
// floor.
func scoreOne(t *testing.T, m *Machine) Snapshot {
	t.Helper()
	startRunning(t, m)
	for i := 0; i < 188; i++ {
		hover(m)
	}
	m.mu.Lock()
	m.actor.Y, m.actor.Vel = 600, 1
	m.mu.Unlock()

	snap := m.Tick()
	if snap.State != Over || snap.Score != 1 {
		t.Fatalf("expected game over with score 1, got %v %d", snap.State, snap.Score)
	}
	return snap
}

func TestGateSubmitsVerifiedScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	who := identity.Identity{ID: "u1", DisplayName: "Seal", EmailVerified: true}
	sink := mocks.NewMockScoreSink(ctrl)
	sink.EXPECT().Submit(1, who).Times(1)

	m, _ := newTestMachine(t, WithIdentity(identity.NewStatic(who)), WithScoreSink(sink))
	snap := scoreOne(t, m)
	if snap.Decision != DecisionSubmitted {
		t.Errorf("Decision = %v, expected submitted", snap.Decision)
	}

	// Further ticks in Over must not submit again
	for i := 0; i < 10; i++ {
		m.Tick()
	}
	m.End()
}

func TestGateAsksIdentityOncePerRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	who := identity.Identity{ID: "u2", DisplayName: "Walrus", EmailVerified: true}
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().CurrentUser().Return(who, true).Times(2)
	sink := mocks.NewMockScoreSink(ctrl)
	sink.EXPECT().Submit(gomock.Any(), who).Times(1)

	m, clock := newTestMachine(t, WithIdentity(provider), WithScoreSink(sink))
	scoreOne(t, m)

	// Second run ends with no score: identity is checked, nothing submitted
	clock.Advance(time.Second)
	if out, _ := m.Jump(); out != OutcomeRestarted {
		t.Fatalf("Jump() = %v, expected restarted", out)
	}
	m.End()
	if snap := m.Snapshot(); snap.Decision != DecisionNoScore {
		t.Errorf("Decision = %v, expected no_score", snap.Decision)
	}
}

func TestGateSkipsIneligible(t *testing.T) {
	tests := []struct {
		name     string
		provider identity.Provider
		expected Decision
	}{
		{"anonymous", identity.Anonymous{}, DecisionAnonymous},
		{"unverified", identity.NewStatic(identity.Identity{ID: "u3", DisplayName: "Pup"}), DecisionUnverified},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No EXPECT: any Submit fails the test
			sink := mocks.NewMockScoreSink(ctrl)
			m, _ := newTestMachine(t, WithIdentity(tc.provider), WithScoreSink(sink))

			snap := scoreOne(t, m)
			if snap.Decision != tc.expected {
				t.Errorf("Decision = %v, expected %v", snap.Decision, tc.expected)
			}
			if snap.Prompt() == "" {
				t.Error("ineligible players should get a prompt")
			}
		})
	}
}

func TestDecide(t *testing.T) {
	verified := identity.Identity{ID: "a", EmailVerified: true}
	unverified := identity.Identity{ID: "b"}

	tests := []struct {
		name     string
		score    int
		provider identity.Provider
		expected Decision
	}{
		{"verified with score", 3, identity.NewStatic(verified), DecisionSubmitted},
		{"verified without score", 0, identity.NewStatic(verified), DecisionNoScore},
		{"unverified", 3, identity.NewStatic(unverified), DecisionUnverified},
		{"nobody", 3, identity.Anonymous{}, DecisionAnonymous},
		{"nobody without score", 0, identity.Anonymous{}, DecisionAnonymous},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got, _ := decide(tc.score, tc.provider); got != tc.expected {
				t.Errorf("decide() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
