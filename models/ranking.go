package models

// RankingEntry aggregates a player's statistics across all matches of a pelada.
type RankingEntry struct {
	PlayerID     int    `json:"player_id"`
	Name         string `json:"name"`
	TotalGoals   int    `json:"total_goals"`
	TotalAssists int    `json:"total_assists"`
}

// RankingReport bundles a pelada with its ranking, used for exports.
type RankingReport struct {
	Pelada  *Pelada        `json:"pelada"`
	Entries []RankingEntry `json:"entries"`
}
