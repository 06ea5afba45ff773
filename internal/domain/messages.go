package domain

// ClientMessage is what a front end sends over the websocket.
type ClientMessage struct {
	Type       string `json:"type"`
	Rows       int    `json:"rows,omitempty"`
	Columns    int    `json:"columns,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Column     int    `json:"column"`
}

// ServerMessage is a fire-and-forget notification for the presentation layer.
// move_made maps to the drop sound, game_over to the win/lose/draw sounds.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Rows        int     `json:"rows,omitempty"`
	Columns     int     `json:"columns,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      int     `json:"column"`
	Row         int     `json:"row"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Result      Outcome `json:"result,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

const (
	MessageGameStart = "game_start"
	MessageMoveMade  = "move_made"
	MessageGameOver  = "game_over"
	MessageError     = "error"
)
