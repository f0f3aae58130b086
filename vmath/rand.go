package vmath

// FastRand is a xorshift64 generator, deterministic for a given seed
// Level layout and random placement use it so a seed reproduces a run
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for non-positive n
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Chance reports true with probability num/den
func (r *FastRand) Chance(num, den int) bool {
	return den > 0 && r.Intn(den) < num
}

// Shuffle permutes n elements via swap
func (r *FastRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}
