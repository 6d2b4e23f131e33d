package phrase

import (
	"fmt"
	"math/rand"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
)

// DefaultCharset is the printable ASCII range genomes are drawn from
const DefaultCharset = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// Problem evolves a byte string toward a target phrase
type Problem struct {
	target  []byte
	charset []byte
}

// New creates a phrase problem. Every target byte must be in charset;
// an empty charset selects DefaultCharset.
func New(target, charset string) (*Problem, error) {
	if len(target) < genetic.MinCrossoverLength {
		return nil, fmt.Errorf("target must have at least %d characters, got %d", genetic.MinCrossoverLength, len(target))
	}
	if charset == "" {
		charset = DefaultCharset
	}
	allowed := make(map[byte]bool, len(charset))
	for i := 0; i < len(charset); i++ {
		allowed[charset[i]] = true
	}
	for i := 0; i < len(target); i++ {
		if !allowed[target[i]] {
			return nil, fmt.Errorf("target character %q is not in charset", target[i])
		}
	}
	return &Problem{target: []byte(target), charset: []byte(charset)}, nil
}

// Target returns the phrase being evolved toward
func (p *Problem) Target() string {
	return string(p.target)
}

// MaxFitness is reached when every position matches
func (p *Problem) MaxFitness() int {
	return len(p.target)
}

// Fitness counts positions that already match the target
func (p *Problem) Fitness(c *genetic.Chromosome[byte]) int {
	matches := 0
	for i := range p.target {
		if c.Get(i) == p.target[i] {
			matches++
		}
	}
	return matches
}

func (p *Problem) Allocate() *genetic.Chromosome[byte] {
	return genetic.NewEmptyChromosome[byte](len(p.target))
}

func (p *Problem) RandomInit(c *genetic.Chromosome[byte], rng *rand.Rand) {
	for i := range p.target {
		c.Set(i, p.charset[rng.Intn(len(p.charset))])
	}
}

// Mutate replaces one random character
func (p *Problem) Mutate(c *genetic.Chromosome[byte], rng *rand.Rand) {
	c.Set(rng.Intn(len(p.target)), p.charset[rng.Intn(len(p.charset))])
}

// NewEngine wires the problem into an engine that stops on an exact match
func NewEngine(target string, generationThreshold, crowd int, opts ...genetic.Option) (*genetic.Engine[byte], *Problem, error) {
	p, err := New(target, "")
	if err != nil {
		return nil, nil, err
	}
	engine, err := genetic.NewEngine[byte](p, p.MaxFitness(), generationThreshold, crowd, opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, p, nil
}
