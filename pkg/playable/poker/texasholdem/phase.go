package texasholdem

import (
	"encoding/json"
	"time"
)

// Phase is the lifecycle state of the room's game
type Phase int

// constants for Phase
const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseRestarting
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseRestarting:
		return "restarting"
	case PhaseFinished:
		return "finished"
	}

	return ""
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// BettingRound is the street of the current hand
type BettingRound int

// constants for BettingRound
const (
	RoundPreFlop BettingRound = iota
	RoundFlop
	RoundTurn
	RoundRiver
	RoundShowdown
)

func (b BettingRound) String() string {
	switch b {
	case RoundPreFlop:
		return "preflop"
	case RoundFlop:
		return "flop"
	case RoundTurn:
		return "turn"
	case RoundRiver:
		return "river"
	case RoundShowdown:
		return "showdown"
	}

	return ""
}

// MarshalJSON encodes JSON
func (b BettingRound) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// communityCardsToDeal returns how many cards are dealt when entering the round
func (b BettingRound) communityCardsToDeal() int {
	switch b {
	case RoundFlop:
		return 3
	case RoundTurn, RoundRiver:
		return 1
	}

	return 0
}

// EndReason records how the last hand ended
type EndReason int

// constants for EndReason
const (
	EndReasonNone EndReason = iota
	EndReasonEarlyEnd
	EndReasonShowdown
)

func (e EndReason) String() string {
	switch e {
	case EndReasonEarlyEnd:
		return "early_end"
	case EndReasonShowdown:
		return "showdown"
	}

	return ""
}

// MarshalJSON encodes JSON, EndReasonNone is null
func (e EndReason) MarshalJSON() ([]byte, error) {
	if e == EndReasonNone {
		return []byte("null"), nil
	}

	return json.Marshal(e.String())
}

// pendingRestart is a redeal scheduled by the game and fired from Tick()
type pendingRestart struct {
	After time.Time
}

func (g *Game) setPendingRestart() {
	g.phase = PhaseRestarting
	g.pendingRestart = &pendingRestart{
		After: time.Now().Add(g.options.RestartDelay),
	}
}
