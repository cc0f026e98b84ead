package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAt(t *testing.T) {
	base := []string{"a", "b", "c"}

	assert.Equal(t, []string{"x", "a", "b", "c"}, InsertAt(base, "x", 1))
	assert.Equal(t, []string{"a", "x", "b", "c"}, InsertAt(base, "x", 2))
	assert.Equal(t, []string{"a", "b", "c", "x"}, InsertAt(base, "x", 0))
	assert.Equal(t, []string{"a", "b", "c", "x"}, InsertAt(base, "x", 9))
	assert.Equal(t, []string{"a", "b", "c"}, base, "input must not be modified")
}

func TestMoveTo(t *testing.T) {
	base := []string{"a", "b", "c", "d"}

	out, err := MoveTo(base, "d", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b", "c"}, out)

	out, err = MoveTo(base, "a", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a", "d"}, out)

	out, err = MoveTo(base, "b", -4)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c", "d"}, out)

	out, err = MoveTo(base, "b", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "b"}, out)

	_, err = MoveTo(base, "z", 1)
	assert.ErrorIs(t, err, ErrNotInSequence)
}

func TestRemove(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, Remove([]string{"a", "b", "c"}, "b"))
	assert.Equal(t, []string{"a"}, Remove([]string{"a"}, "z"))
}

func TestPositionChanges(t *testing.T) {
	current := map[string]int{"a": 1, "b": 2, "c": 3}

	changes := PositionChanges(current, []string{"a", "c", "b"})

	assert.Equal(t, map[string]int{"c": 2, "b": 3}, changes)
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(nil))
	assert.True(t, IsDense([]int{2, 1, 3}))
	assert.False(t, IsDense([]int{1, 1, 2}))
	assert.False(t, IsDense([]int{0, 1}))
	assert.False(t, IsDense([]int{1, 3}))
}

func TestOrderingStaysDense(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var ordered []string
	next := 0

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(ordered) == 0:
			next++
			ordered = InsertAt(ordered, fmt.Sprintf("id%d", next), rng.Intn(len(ordered)+3)-1)
		case op == 1:
			var err error
			ordered, err = MoveTo(ordered, ordered[rng.Intn(len(ordered))], rng.Intn(len(ordered)+4)-2)
			require.NoError(t, err)
		default:
			ordered = Remove(ordered, ordered[rng.Intn(len(ordered))])
		}

		positions := make([]int, 0, len(ordered))
		for _, p := range Positions(ordered) {
			positions = append(positions, p)
		}
		require.True(t, IsDense(positions), "step %d: %v", i, ordered)
		require.Len(t, Positions(ordered), len(ordered), "ids must stay unique")
	}
}

func TestMainChanges(t *testing.T) {
	photos := []Photo{
		{ID: "p1", Main: true},
		{ID: "p2"},
		{ID: "p3"},
	}

	changes, err := MainChanges(photos, "p2")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"p1": false, "p2": true}, changes)

	changes, err = MainChanges(photos, "p1")
	require.NoError(t, err)
	assert.Empty(t, changes)

	_, err = MainChanges(photos, "missing")
	assert.ErrorIs(t, err, ErrNotInSequence)
}

func TestMainChanges_SequenceLeavesOneMain(t *testing.T) {
	photos := []Photo{{ID: "p1", Main: true}, {ID: "p2"}, {ID: "p3"}}
	apply := func(target string) {
		changes, err := MainChanges(photos, target)
		require.NoError(t, err)
		for i := range photos {
			if main, ok := changes[photos[i].ID]; ok {
				photos[i].Main = main
			}
		}
	}

	apply("p2")
	apply("p3")

	var mains []string
	for _, p := range photos {
		if p.Main {
			mains = append(mains, p.ID)
		}
	}
	assert.Equal(t, []string{"p3"}, mains)
}
