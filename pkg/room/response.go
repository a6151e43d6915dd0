package room

import (
	"holdem-server/pkg/playable"
)

type playerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newPlayerResponse(key string, c *Client) *playable.Response {
	return &playable.Response{
		Key: key,
		Data: playerResponse{
			ID:   c.ID,
			Name: c.Name,
		},
	}
}
