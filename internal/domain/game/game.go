// Package game holds the live-game model shared by the use case,
// repository and delivery layers.
package game

import "time"

// Game is one human-versus-engine session. Cells are stored from the
// human's point of view: +1 human, -1 engine, 0 empty.
type Game struct {
	GameKeySecret string     `json:"game_key_secret,omitempty" bson:"game_key_secret"`
	GameKeyPublic string     `json:"game_key_public" bson:"game_key_public"`
	Status        string     `json:"status" bson:"status"`
	Turn          string     `json:"turn" bson:"turn"`
	EngineName    string     `json:"engine_name" bson:"engine_name"`
	EngineStarted bool       `json:"engine_started" bson:"engine_started"`
	Board         [][]int    `json:"board" bson:"board"`
	Moves         []Move     `json:"moves" bson:"moves"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

// Public strips the secret key for responses that leave the server.
func (g Game) Public() Game {
	g.GameKeySecret = ""
	return g
}

type CreateGameRequest struct {
	EngineStarts bool `json:"engine_starts"`
}

type GameCreateResponse struct {
	GameKeyPublic string `json:"game_key_public"`
	GameKeySecret string `json:"game_key_secret"`
}

type MoveRequest struct {
	Column int `json:"column"`
}

type GameStateResponse struct {
	Game     Game  `json:"game"`
	LastMove *Move `json:"last_move,omitempty"`
}
