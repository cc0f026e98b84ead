package domain

import (
	"errors"
	"slices"
)

// Ordering is dense: after every mutation the positions of a sibling set are
// exactly 1..N in the order of the returned slice.

var ErrNotInSequence = errors.New("item is not part of the sequence")

// InsertAt places id into ordered at 1-based position. Positions below 1 or
// beyond the end append.
func InsertAt(ordered []string, id string, position int) []string {
	out := make([]string, 0, len(ordered)+1)
	for _, existing := range ordered {
		if existing != id {
			out = append(out, existing)
		}
	}
	if position < 1 || position > len(out) {
		return append(out, id)
	}
	out = slices.Insert(out, position-1, id)
	return out
}

// MoveTo moves id to 1-based position, clamped to [1, N].
func MoveTo(ordered []string, id string, position int) ([]string, error) {
	idx := slices.Index(ordered, id)
	if idx < 0 {
		return nil, ErrNotInSequence
	}
	out := slices.Delete(slices.Clone(ordered), idx, idx+1)
	switch {
	case position < 1:
		position = 1
	case position > len(out)+1:
		position = len(out) + 1
	}
	return slices.Insert(out, position-1, id), nil
}

// Remove drops id and closes the gap.
func Remove(ordered []string, id string) []string {
	out := make([]string, 0, len(ordered))
	for _, existing := range ordered {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// Positions maps each id to its dense 1-based position.
func Positions(ordered []string) map[string]int {
	pos := make(map[string]int, len(ordered))
	for i, id := range ordered {
		pos[id] = i + 1
	}
	return pos
}

// PositionChanges returns only the ids whose position differs from current.
func PositionChanges(current map[string]int, ordered []string) map[string]int {
	changes := make(map[string]int)
	for id, p := range Positions(ordered) {
		if current[id] != p {
			changes[id] = p
		}
	}
	return changes
}

// IsDense reports whether positions form a permutation of 1..N.
func IsDense(positions []int) bool {
	seen := make([]bool, len(positions)+1)
	for _, p := range positions {
		if p < 1 || p > len(positions) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// MainChanges computes the main flag updates needed so that only target is main.
// The result maps photo id to its new flag and only contains rows that change.
func MainChanges(photos []Photo, targetID string) (map[string]bool, error) {
	found := false
	changes := make(map[string]bool)
	for _, p := range photos {
		if p.ID == targetID {
			found = true
			if !p.Main {
				changes[p.ID] = true
			}
			continue
		}
		if p.Main {
			changes[p.ID] = false
		}
	}
	if !found {
		return nil, ErrNotInSequence
	}
	return changes, nil
}
