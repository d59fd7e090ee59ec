package detrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameInputsProduceSameSequence(t *testing.T) {
	a := New(42, "buildingplanner", 1)
	b := New(42, "buildingplanner", 1)

	for i := 0; i < 10; i++ {
		va := a.IntRange(0, 1000)
		vb := b.IntRange(0, 1000)
		assert.Equal(t, va, vb)
	}
}

func TestDifferentSubsystemsDiverge(t *testing.T) {
	a := New(42, "buildingplanner", 1)
	b := New(42, "expansion", 1)

	same := true
	for i := 0; i < 10; i++ {
		if a.IntRange(0, 1_000_000) != b.IntRange(0, 1_000_000) {
			same = false
			break
		}
	}
	assert.False(t, same, "distinct subsystem names should not draw identical sequences")
}

func TestDifferentTicksDiverge(t *testing.T) {
	a := New(1, "buildingplanner", 1)
	b := New(2, "buildingplanner", 1)
	assert.NotEqual(t, a.IntRange(0, 1_000_000), b.IntRange(0, 1_000_000))
}
