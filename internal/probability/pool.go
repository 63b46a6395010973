package probability

import (
	"fmt"
	"strings"
)

// Pool identifies a pari-mutuel pool type.
type Pool string

// Supported pools
const (
	PoolWin      Pool = "win"
	PoolQuinella Pool = "quinella"
	PoolTierce   Pool = "tierce"
	PoolTrio     Pool = "trio"
	PoolPlace    Pool = "place"
	PoolPlaceQ   Pool = "place_q"
	PoolQuartet  Pool = "quartet"
	PoolFirst4   Pool = "first_4"
)

// Pools lists every supported pool in the order they are documented.
var Pools = []Pool{PoolWin, PoolQuinella, PoolTierce, PoolTrio, PoolPlace, PoolPlaceQ, PoolQuartet, PoolFirst4}

// ParsePool converts a pool identifier into a Pool. Names must match exactly.
func ParsePool(name string) (Pool, error) {
	p := Pool(name)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrPoolName, name, poolNames())
	}
	return p, nil
}

// Valid reports whether p is a supported pool.
func (p Pool) Valid() bool {
	return p.Level() > 0
}

// Level returns the deepest order level the pool is built from, or 0 for unknown pools.
func (p Pool) Level() int {
	switch p {
	case PoolWin:
		return 1
	case PoolQuinella:
		return 2
	case PoolTierce, PoolTrio, PoolPlace, PoolPlaceQ:
		return 3
	case PoolQuartet, PoolFirst4:
		return 4
	default:
		return 0
	}
}

// MinCompetitors returns the strict lower bound on the field size: a pool can be
// computed only when n > MinCompetitors().
func (p Pool) MinCompetitors() int {
	return levelMinCompetitors(p.Level())
}

// Rank returns the number of axes of the pool's output.
func (p Pool) Rank() int {
	switch p {
	case PoolWin, PoolPlace:
		return 1
	case PoolQuinella, PoolPlaceQ:
		return 2
	case PoolTierce, PoolTrio:
		return 3
	case PoolQuartet, PoolFirst4:
		return 4
	default:
		return 0
	}
}

// Ordered reports whether the pool distinguishes finishing order.
func (p Pool) Ordered() bool {
	switch p {
	case PoolWin, PoolTierce, PoolQuartet:
		return true
	default:
		return false
	}
}

func (p Pool) String() string {
	return string(p)
}

// levelMinCompetitors is the strict lower bound on n before building an order level.
func levelMinCompetitors(level int) int {
	if level <= 1 {
		return 0
	}
	return level
}

func poolNames() string {
	names := make([]string, len(Pools))
	for i, p := range Pools {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// Axis permutations used to symmetrise exact-order tensors into unordered sets.
var (
	permutations3 = [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	permutations4 = [][]int{
		{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 2, 3, 1}, {0, 3, 1, 2}, {0, 3, 2, 1},
		{1, 0, 2, 3}, {1, 0, 3, 2}, {1, 2, 0, 3}, {1, 2, 3, 0}, {1, 3, 0, 2}, {1, 3, 2, 0},
		{2, 0, 1, 3}, {2, 0, 3, 1}, {2, 1, 0, 3}, {2, 1, 3, 0}, {2, 3, 0, 1}, {2, 3, 1, 0},
		{3, 0, 1, 2}, {3, 0, 2, 1}, {3, 1, 0, 2}, {3, 1, 2, 0}, {3, 2, 0, 1}, {3, 2, 1, 0},
	}
)
