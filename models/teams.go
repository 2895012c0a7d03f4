package models

const (
	TeamCount    = 4
	TeamSize     = 5
	DrawPoolSize = TeamCount * TeamSize
)

// Teams holds the four buckets produced by a draw, in draft order.
type Teams struct {
	A []Player `json:"team_a"`
	B []Player `json:"team_b"`
	C []Player `json:"team_c"`
	D []Player `json:"team_d"`
}

// Bucket returns the bucket for index 0..3 (A..D), or nil when out of range.
func (t *Teams) Bucket(i int) *[]Player {
	switch i {
	case 0:
		return &t.A
	case 1:
		return &t.B
	case 2:
		return &t.C
	case 3:
		return &t.D
	}
	return nil
}
