package genetic

// Chromosome is a fixed-length, mutable sequence of genomes
type Chromosome[G any] struct {
	genomes []G
}

// NewChromosome creates a chromosome made of the given genomes.
// The values are copied; the length never changes.
func NewChromosome[G any](genes ...G) *Chromosome[G] {
	genomes := make([]G, len(genes))
	copy(genomes, genes)
	return &Chromosome[G]{genomes: genomes}
}

// NewEmptyChromosome allocates a chromosome of length n with zero-valued genomes
func NewEmptyChromosome[G any](n int) *Chromosome[G] {
	return &Chromosome[G]{genomes: make([]G, n)}
}

// Len returns the number of genomes
func (c *Chromosome[G]) Len() int {
	return len(c.genomes)
}

// Get returns the genome at position i
func (c *Chromosome[G]) Get(i int) G {
	c.checkIndex(i)
	return c.genomes[i]
}

// Set replaces the genome at position i
func (c *Chromosome[G]) Set(i int, v G) {
	c.checkIndex(i)
	c.genomes[i] = v
}

// Genomes returns the full ordered content as a new slice
func (c *Chromosome[G]) Genomes() []G {
	out := make([]G, len(c.genomes))
	copy(out, c.genomes)
	return out
}

// Clone creates a deep copy of this chromosome
func (c *Chromosome[G]) Clone() *Chromosome[G] {
	return NewChromosome(c.genomes...)
}

// copyFrom overwrites every genome with the content of src
func (c *Chromosome[G]) copyFrom(src *Chromosome[G]) {
	for i := range src.genomes {
		c.Set(i, src.genomes[i])
	}
}

func (c *Chromosome[G]) checkIndex(i int) {
	if i < 0 || i >= len(c.genomes) {
		panic(&IndexError{Index: i, Length: len(c.genomes)})
	}
}
