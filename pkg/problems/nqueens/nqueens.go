package nqueens

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
)

// Problem places n queens on an n×n board, one per column.
// Genome i holds the row of the queen in column i.
type Problem struct {
	queens int
}

// New creates an n-queens problem
func New(queens int) (*Problem, error) {
	if queens < genetic.MinCrossoverLength {
		return nil, fmt.Errorf("queens must be at least %d, got %d", genetic.MinCrossoverLength, queens)
	}
	return &Problem{queens: queens}, nil
}

// Queens returns the board size
func (p *Problem) Queens() int {
	return p.queens
}

// MaxFitness is the number of non-attacking pairs on a solved board
func (p *Problem) MaxFitness() int {
	return p.queens * (p.queens - 1) / 2
}

// Fitness counts queen pairs that do not attack each other
func (p *Problem) Fitness(c *genetic.Chromosome[int]) int {
	n := c.Len()
	noAttack := n * (n - 1) / 2
	for i := 0; i < n; i++ {
		y1 := c.Get(i)
		for j := i + 1; j < n; j++ {
			y2 := c.Get(j)
			if y1 == y2 || i+y1 == j+y2 || i-y1 == j-y2 {
				noAttack--
			}
		}
	}
	return noAttack
}

// Allocate returns an empty board
func (p *Problem) Allocate() *genetic.Chromosome[int] {
	return genetic.NewEmptyChromosome[int](p.queens)
}

// RandomInit places one queen on a random row of every column
func (p *Problem) RandomInit(c *genetic.Chromosome[int], rng *rand.Rand) {
	for i := 0; i < p.queens; i++ {
		c.Set(i, rng.Intn(p.queens))
	}
}

// Mutate moves the queen of one random column to a random row
func (p *Problem) Mutate(c *genetic.Chromosome[int], rng *rand.Rand) {
	c.Set(rng.Intn(p.queens), rng.Intn(p.queens))
}

// NewEngine wires the problem into an engine that stops on a solved board
func NewEngine(queens, generationThreshold, crowd int, opts ...genetic.Option) (*genetic.Engine[int], *Problem, error) {
	p, err := New(queens)
	if err != nil {
		return nil, nil, err
	}
	engine, err := genetic.NewEngine[int](p, p.MaxFitness(), generationThreshold, crowd, opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, p, nil
}

// Board renders rows as an ASCII board, Q marks a queen
func Board(rows []int) string {
	n := len(rows)
	var sb strings.Builder
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if rows[x] == y {
				sb.WriteByte('Q')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
