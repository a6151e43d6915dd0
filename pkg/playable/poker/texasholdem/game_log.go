package texasholdem

import (
	"holdem-server/pkg/playable"
)

// log records a message for the room log
func (g *Game) log(playerID string, format string, a ...interface{}) {
	msg := playable.SimpleLogMessage(playerID, format, a...)
	g.logs = append(g.logs, msg)
	g.logger.WithField("playerId", playerID).Debug(msg.Message)
}

// DrainLogs returns the messages recorded since the last call
func (g *Game) DrainLogs() []*playable.LogMessage {
	if len(g.logs) == 0 {
		return nil
	}

	logs := g.logs
	g.logs = make([]*playable.LogMessage, 0)
	return logs
}
