package draw

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mateus/app-pelada/models"
)

var (
	ErrInvalidSize   = errors.New("draw requires exactly 20 players")
	ErrInvalidRating = errors.New("player rating is not a number")
)

// TeamDrawer splits a pool of players into four balanced teams.
type TeamDrawer interface {
	Draw(players []models.Player) (*models.Teams, error)
}

type Drawer struct {
	shuffler Shuffler
}

// NewDrawer returns a Drawer using s for in-tier permutations.
// A nil s falls back to the process-wide random source.
func NewDrawer(s Shuffler) *Drawer {
	if s == nil {
		s = DefaultShuffler()
	}
	return &Drawer{shuffler: s}
}

// Draw orders players by rating tier (shuffled inside each tier) and deals
// them into teams A..D in a snake pattern that reverses every four picks.
func (d *Drawer) Draw(players []models.Player) (*models.Teams, error) {
	if len(players) != models.DrawPoolSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, len(players))
	}

	ordered, err := d.Order(players)
	if err != nil {
		return nil, err
	}

	teams := &models.Teams{
		A: make([]models.Player, 0, models.TeamSize),
		B: make([]models.Player, 0, models.TeamSize),
		C: make([]models.Player, 0, models.TeamSize),
		D: make([]models.Player, 0, models.TeamSize),
	}
	for i, p := range ordered {
		bucket := teams.Bucket(SnakeIndex(i, models.TeamCount))
		*bucket = append(*bucket, p)
	}
	return teams, nil
}

// Order returns a copy of players sorted by descending rating, with players
// of identical rating randomly permuted. Ratings are compared exactly.
func (d *Drawer) Order(players []models.Player) ([]models.Player, error) {
	ordered := make([]models.Player, len(players))
	copy(ordered, players)

	for _, p := range ordered {
		if math.IsNaN(p.Rating) {
			return nil, fmt.Errorf("%w: player %d", ErrInvalidRating, p.ID)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Rating > ordered[j].Rating
	})

	for _, tier := range Tiers(ordered) {
		d.shuffler.Shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
	}
	return ordered, nil
}

// Tiers splits an already rating-sorted slice into runs of equal rating.
// The returned sub-slices alias sorted.
func Tiers(sorted []models.Player) [][]models.Player {
	var tiers [][]models.Player
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i].Rating != sorted[start].Rating {
			tiers = append(tiers, sorted[start:i])
			start = i
		}
	}
	return tiers
}

// SnakeIndex maps the i-th pick to a team index: forward on even rounds,
// reversed on odd ones.
func SnakeIndex(i, teams int) int {
	round, pos := i/teams, i%teams
	if round%2 == 0 {
		return pos
	}
	return teams - 1 - pos
}
