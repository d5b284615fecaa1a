package game

// Phase is the session state machine position.
type Phase int

const (
	NotStarted Phase = iota // Title screen, waiting for confirm
	Playing                 // Active gameplay
	GameOver                // Ship destroyed and the death delay elapsed
	Won                     // Win score reached with the ship alive
)

// String returns the phase name used in logs and the score ledger.
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a game.
func (p Phase) Terminal() bool {
	return p == GameOver || p == Won
}
