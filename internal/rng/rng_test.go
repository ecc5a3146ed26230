package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a.True(found[0])
	a.True(found[4])
	a.False(found[5])
	a.Len(found, 5)
}

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)

	s1 := NewSeeded(42)
	s2 := NewSeeded(42)
	s3 := NewSeeded(43)

	var seq1, seq2, seq3 []int
	for i := 0; i < 20; i++ {
		seq1 = append(seq1, s1.Intn(1000))
		seq2 = append(seq2, s2.Intn(1000))
		seq3 = append(seq3, s3.Intn(1000))
	}

	a.Equal(seq1, seq2)
	a.NotEqual(seq1, seq3)
	for _, n := range seq1 {
		a.True(n >= 0 && n < 1000)
	}
}
