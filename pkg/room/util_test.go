package room

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/texasholdem"
)

func newTestPitBoss(t *testing.T, opts texasholdem.Options) *PitBoss {
	t.Helper()

	pb := NewPitBoss(logrus.StandardLogger(), opts)
	pb.StartShift()
	t.Cleanup(pb.EndShift)

	return pb
}

// expectResponse reads from the client until a response with the key arrives
func expectResponse(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*playable.Response); ok && res.Key == key {
				return res
			}
		case <-timeout:
			require.FailNowf(t, "timed out", "waiting for %q sent to %s", key, c.Name)
			return nil
		}
	}
}

// expectGame reads from the client until a game snapshot matches
func expectGame(t *testing.T, c *Client, match func(state *texasholdem.GameState) bool) *texasholdem.GameState {
	t.Helper()

	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			res, ok := msg.(*playable.Response)
			if !ok || res.Key != "game" {
				continue
			}

			if state := res.Data.(*texasholdem.GameState); match(state) {
				return state
			}
		case <-timeout:
			require.FailNowf(t, "timed out", "waiting for a game update sent to %s", c.Name)
			return nil
		}
	}
}

func anyGame(*texasholdem.GameState) bool {
	return true
}

func findPlayer(state *texasholdem.GameState, id string) *texasholdem.PlayerState {
	for _, p := range state.Players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// seat connects the clients in order and waits until each one is seated
func seat(t *testing.T, pb *PitBoss, clients ...*Client) {
	t.Helper()

	for _, c := range clients {
		pb.ClientConnected(c)
		expectResponse(t, c, "joined")
		expectGame(t, c, anyGame)
	}
}

func send(c *Client, action, ctx string, additionalData ...playable.AdditionalData) {
	msg := &playable.PayloadIn{
		Action:  action,
		Context: ctx,
	}

	if len(additionalData) == 1 {
		msg.AdditionalData = additionalData[0]
	}

	c.ReceivedMessage(msg)
}
