package uid

import "github.com/google/uuid"

// GenerateGameID returns a random (v4) UUID string for a new game session.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether id parses as a game ID.
func IsGameID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
