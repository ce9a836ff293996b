// Package support is the small runtime linked by code the Go backend emits.
// The generator internals share its flag arithmetic so the decomposition used
// at generation time and the one shipped to generated code cannot drift.
package support

import "fmt"

// LoadGuard is a reentrancy counter guarding bulk-load phases. End calls
// without a matching Begin are absorbed; the counter never goes negative.
type LoadGuard struct {
	count int
}

// Begin enters a load phase.
func (g *LoadGuard) Begin() {
	g.count++
}

// End leaves a load phase. Extra End calls are silently absorbed.
func (g *LoadGuard) End() {
	if g.count > 0 {
		g.count--
	}
}

// Active reports whether at least one load phase is open.
func (g *LoadGuard) Active() bool {
	return g.count != 0
}

// Flag is one named flag constant of a flags enumeration.
type Flag struct {
	Name  string
	Value uint64
}

// Decompose expresses value as a union of declared flags: flags are sorted
// by value descending and greedily subtracted. A residual that no declared
// flag covers is an error, never a guess.
func Decompose(value uint64, flags []Flag) ([]string, error) {
	if value == 0 {
		for _, f := range flags {
			if f.Value == 0 {
				return []string{f.Name}, nil
			}
		}
		return nil, nil
	}

	sorted := make([]Flag, len(flags))
	copy(sorted, flags)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Value > sorted[j-1].Value; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var names []string
	rest := value
	for _, f := range sorted {
		if f.Value == 0 || f.Value > rest {
			continue
		}
		if rest&f.Value == f.Value {
			names = append(names, f.Name)
			rest &^= f.Value
		}
		if rest == 0 {
			break
		}
	}
	if rest != 0 {
		return nil, fmt.Errorf("value %d is not decomposable into declared flags (residual %d)", value, rest)
	}
	return names, nil
}

// Compose is the inverse of Decompose: it ORs the values of the named flags.
// Unknown names are an error.
func Compose(names []string, flags []Flag) (uint64, error) {
	byName := make(map[string]uint64, len(flags))
	for _, f := range flags {
		byName[f.Name] = f.Value
	}
	var out uint64
	for _, n := range names {
		v, ok := byName[n]
		if !ok {
			return 0, fmt.Errorf("unknown flag name %q", n)
		}
		out |= v
	}
	return out, nil
}
