package seal

import "github.com/FUCKiro/flappyseal-app/internal/identity"

//go:generate go tool mockgen -destination=./mocks/score_sink_mock.go -package=mocks . ScoreSink
//go:generate go tool mockgen -destination=./mocks/provider_mock.go -package=mocks github.com/FUCKiro/flappyseal-app/internal/identity Provider

// ScoreSink receives finished scores that qualify for the leaderboard.
// Submit must not block; failures are the sink's business.
type ScoreSink interface {
	Submit(score int, who identity.Identity)
}

type discardSink struct{}

func (discardSink) Submit(int, identity.Identity) {}

// decide asks the provider who is playing and reports whether the score
// may be submitted.
func decide(score int, p identity.Provider) (Decision, identity.Identity) {
	who, ok := p.CurrentUser()
	switch {
	case !ok:
		return DecisionAnonymous, identity.Identity{}
	case !who.EmailVerified:
		return DecisionUnverified, who
	case score <= 0:
		return DecisionNoScore, who
	}
	return DecisionSubmitted, who
}
