package uid

import "github.com/google/uuid"

// GenerateClientID names a websocket connection. Time-ordered (v7) so log
// lines sort by connect time; falls back to v4.
func GenerateClientID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
