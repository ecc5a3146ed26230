package rng

// Generator is the source of randomness for shuffles and generated names
// Crypto is used in production, Seeded makes a sequence replayable
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}
