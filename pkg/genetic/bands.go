package genetic

// Bands holds the percentile cut points of a sorted population.
// All cut points are truncated toward zero.
type Bands struct {
	Crowd int
	P10   int
	P40   int
	P90   int
}

// NewBands computes the 10/40/90 percentile cut points for crowd
func NewBands(crowd int) Bands {
	return Bands{
		Crowd: crowd,
		P10:   crowd * 1 / 10,
		P40:   crowd * 4 / 10,
		P90:   crowd * 9 / 10,
	}
}

// CrossoverSize is the number of chromosomes in [P40, Crowd)
func (b Bands) CrossoverSize() int {
	return b.Crowd - b.P40
}

// EliteSize is the number of chromosomes in [P90, Crowd)
func (b Bands) EliteSize() int {
	return b.Crowd - b.P90
}

// WeakSize is the number of chromosomes in [0, P10)
func (b Bands) WeakSize() int {
	return b.P10
}

// NextSize is the size of the population a generation step produces
func (b Bands) NextSize() int {
	return b.CrossoverSize() + 2*b.EliteSize() + 2*b.WeakSize()
}

// Validate checks that the bands pair up and preserve the population size
func (b Bands) Validate() error {
	if b.CrossoverSize()%2 != 0 {
		return newPreconditionError("bands", "crossover band [%d, %d) has odd size %d", b.P40, b.Crowd, b.CrossoverSize()).
			WithContext("crowd", b.Crowd)
	}
	if b.NextSize() != b.Crowd {
		return newPreconditionError("bands", "next generation size %d differs from crowd %d", b.NextSize(), b.Crowd)
	}
	return nil
}
