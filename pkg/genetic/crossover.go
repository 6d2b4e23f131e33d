package genetic

import "math/rand"

// MinCrossoverLength is the shortest chromosome single-point crossover accepts
const MinCrossoverLength = 3

// Crossover performs single-point crossover of p1 and p2 into the pre-allocated
// children c1 and c2. The cut point is drawn uniformly from [1, n-2].
func Crossover[G any](p1, p2, c1, c2 *Chromosome[G], rng *rand.Rand) error {
	if err := checkCrossover(p1, p2, c1, c2); err != nil {
		return err
	}
	n := p1.Len()
	cut := rng.Intn(n-2) + 1
	return CrossoverAt(p1, p2, c1, c2, cut)
}

// CrossoverAt performs single-point crossover at a fixed cut point.
// Positions before cut come from the same-side parent, the rest are swapped.
func CrossoverAt[G any](p1, p2, c1, c2 *Chromosome[G], cut int) error {
	if err := checkCrossover(p1, p2, c1, c2); err != nil {
		return err
	}
	n := p1.Len()
	if cut < 0 || cut > n {
		return newPreconditionError("crossover", "cut point %d outside [0, %d]", cut, n)
	}

	i := 0
	for ; i < cut; i++ {
		c1.Set(i, p1.Get(i))
		c2.Set(i, p2.Get(i))
	}
	for ; i < n; i++ {
		c1.Set(i, p2.Get(i))
		c2.Set(i, p1.Get(i))
	}
	return nil
}

func checkCrossover[G any](p1, p2, c1, c2 *Chromosome[G]) error {
	n := p1.Len()
	if n < MinCrossoverLength {
		return newPreconditionError("crossover", "chromosome length %d is below %d", n, MinCrossoverLength)
	}
	if p2.Len() != n || c1.Len() != n || c2.Len() != n {
		return newPreconditionError("crossover", "length mismatch").
			WithContext("parent1", n).
			WithContext("parent2", p2.Len()).
			WithContext("child1", c1.Len()).
			WithContext("child2", c2.Len())
	}
	return nil
}
