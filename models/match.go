package models

import "time"

// MaxMatchesPerPelada caps how many matches a pelada session can record.
const MaxMatchesPerPelada = 4

type Match struct {
	ID        int       `json:"id"`
	PeladaID  int       `json:"pelada_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`

	Stats []MatchStat `json:"stats"`
}

type MatchStat struct {
	ID       int `json:"id"`
	MatchID  int `json:"match_id"`
	PlayerID int `json:"player_id"`
	Goals    int `json:"goals"`
	Assists  int `json:"assists"`
}
