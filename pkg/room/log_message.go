package room

import (
	"holdem-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the latest messages for clients who join later
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

func (d *Dealer) logHistory() []*playable.LogMessage {
	history := make([]*playable.LogMessage, len(d.logMessages))
	copy(history, d.logMessages)

	return history
}
