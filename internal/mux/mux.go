package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"

	"holdem-server/internal/metrics"
	"holdem-server/pkg/room"
)

type ctxKey int

const (
	ctxRoomKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
// The pit boss must already be on shift
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/metrics").Handler(metrics.Metrics.Handler())
	r.Methods(http.MethodGet).Path("/rooms").Handler(this.getRooms())

	rr := r.PathPrefix("/rooms/{roomId:[A-Za-z0-9_-]{1,64}}").Subrouter()
	rr.Use(this.roomMiddleware)

	rr.Methods(http.MethodGet).Path("").Handler(this.getRoom())
	rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomWS())

	return this
}

// roomMiddleware stores the room ID from the path in the request context
func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := gmux.Vars(r)["roomId"]
		newCtx := context.WithValue(r.Context(), ctxRoomKey, roomID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func roomIDFromContext(ctx context.Context) string {
	roomID, _ := ctx.Value(ctxRoomKey).(string)
	return roomID
}
