package game

import "time"

const (
	SideHuman  = "human"
	SideEngine = "engine"
)

// Move records one drop. Row is where the piece landed.
type Move struct {
	Side     string    `json:"side" bson:"side"`
	Column   int       `json:"column" bson:"column"`
	Row      int       `json:"row" bson:"row"`
	PlayedAt time.Time `json:"played_at" bson:"played_at"`
}
