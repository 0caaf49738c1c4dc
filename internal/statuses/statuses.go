package statuses

const (
	StatusRunning   = "running"
	StatusHumanWon  = "human_won"
	StatusEngineWon = "engine_won"
	StatusDraw      = "draw"
)
