package nqueens

import (
	"math/rand"
	"testing"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TooFewQueens(t *testing.T) {
	_, err := New(2)
	assert.Error(t, err)
}

func TestMaxFitness(t *testing.T) {
	p, err := New(8)
	require.NoError(t, err)

	assert.Equal(t, 28, p.MaxFitness())
	assert.Equal(t, 8, p.Queens())
}

func TestFitness_Solved(t *testing.T) {
	p, err := New(8)
	require.NoError(t, err)

	solution := genetic.NewChromosome(0, 4, 7, 5, 2, 6, 1, 3)
	assert.Equal(t, 28, p.Fitness(solution))
}

func TestFitness_AllSameRow(t *testing.T) {
	p, err := New(8)
	require.NoError(t, err)

	board := genetic.NewChromosome(0, 0, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, 0, p.Fitness(board))
}

func TestFitness_Diagonal(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)

	// every pair shares the main diagonal
	board := genetic.NewChromosome(0, 1, 2, 3)
	assert.Equal(t, 0, p.Fitness(board))

	// known 4-queens solution
	assert.Equal(t, 6, p.Fitness(genetic.NewChromosome(1, 3, 0, 2)))
}

func TestRandomInitAndMutate_StayOnBoard(t *testing.T) {
	p, err := New(8)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	c := p.Allocate()
	require.Equal(t, 8, c.Len())
	p.RandomInit(c, rng)
	for i := 0; i < 50; i++ {
		p.Mutate(c, rng)
	}

	for _, row := range c.Genomes() {
		assert.GreaterOrEqual(t, row, 0)
		assert.Less(t, row, 8)
	}
}

func TestTrace_EightQueens(t *testing.T) {
	engine, p, err := NewEngine(8, 500, 20, genetic.WithSeed(2024))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.PassedGenerations(), 1)
	assert.LessOrEqual(t, result.PassedGenerations(), 500)
	assert.True(t, result.PassedGenerations() == 500 || result.Fitness() >= p.MaxFitness())
	assert.Equal(t, 20, result.Crowd())

	best := result.BestChromosome()
	require.Len(t, best, 8)
	for _, row := range best {
		assert.GreaterOrEqual(t, row, 0)
		assert.Less(t, row, 8)
	}
	assert.Equal(t, p.Fitness(genetic.NewChromosome(best...)), result.Fitness())
}

func TestTrace_FirstGenerationAlreadyGoodEnough(t *testing.T) {
	p, err := New(8)
	require.NoError(t, err)

	engine, err := genetic.NewEngine[int](p, 0, 500, 10, genetic.WithSeed(1))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)
	assert.Equal(t, 1, result.PassedGenerations())
}

func TestNewEngine_InvalidCrowd(t *testing.T) {
	engine, _, err := NewEngine(8, 500, 7)

	assert.Nil(t, engine)
	assert.True(t, genetic.IsConfigurationError(err))
}

func TestBoard(t *testing.T) {
	board := Board([]int{1, 3, 0, 2})

	assert.Equal(t, ". . Q .\nQ . . .\n. . . Q\n. Q . .\n", board)
}
