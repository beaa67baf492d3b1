package consts

import "time"

// GameStatus is the lifecycle state of a game record.
type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusPlaying  GameStatus = "playing"
	StatusFinished GameStatus = "finished"
)

// Difficulty governs bot aggressiveness, never rule legality.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// PlayerKind distinguishes the two seat occupants.
type PlayerKind string

const (
	KindHuman PlayerKind = "human"
	KindBot   PlayerKind = "bot"
)

const (
	MaxPlayers   = 2
	StartingHand = 7

	// UnoPenaltyCards is drawn when a player drops to one card
	// without declaring.
	UnoPenaltyCards = 2
)

const (
	GameTTL       = 30 * time.Minute
	FinishedTTL   = 10 * time.Minute
	ActiveGameTTL = 30 * time.Minute
)

type Error struct {
	Code int
	Msg  string
}

func (e Error) Error() string {
	return e.Msg
}

func NewErr(code int, msg string) Error {
	return Error{Code: code, Msg: msg}
}

var (
	ErrGameNotFound          = NewErr(100, "Game not found. ")
	ErrGameNotPlaying        = NewErr(101, "Game is not in progress. ")
	ErrGameFull              = NewErr(102, "Game is full. ")
	ErrNotYourTurn           = NewErr(103, "Not your turn. ")
	ErrNotInGame             = NewErr(104, "Player not in game. ")
	ErrCardNotInHand         = NewErr(105, "Card not in hand. ")
	ErrIllegalCard           = NewErr(106, "Cannot play this card. ")
	ErrMissingColorChoice    = NewErr(107, "Must choose a color for wild card. ")
	ErrUnexpectedColorChoice = NewErr(108, "Cannot choose color for non-wild card. ")
	ErrInvalidDeclaration    = NewErr(109, "Can only declare with exactly 2 cards. ")
	ErrJoinOwnGame           = NewErr(110, "Cannot join your own game. ")
	ErrOutOfRange            = NewErr(111, "Card id out of range. ")
	ErrConcurrencyConflict   = NewErr(112, "Conflicting move, reload and retry. ")
	ErrDifficultyInvalid     = NewErr(113, "Difficulty invalid. ")
	ErrGameNotJoinable       = NewErr(114, "Game already started or finished. ")
)
