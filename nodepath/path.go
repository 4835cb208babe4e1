// Package nodepath addresses nodes of the environment tree a program runs
// against. A Path is a sequence of Left/Right descents from the root; an
// Address is the single integer the runtime uses to fetch that node.
package nodepath

import (
	"strings"
)

// Direction selects one component of a pair node.
type Direction uint8

const (
	// Left descends into the first component of a pair.
	Left Direction = iota
	// Right descends into the rest component of a pair.
	Right
)

// String returns "L" or "R".
func (d Direction) String() string {
	if d == Right {
		return "R"
	}

	return "L"
}

func (d Direction) bit() uint64 {
	if d == Right {
		return 1
	}

	return 0
}

// Path is an immutable root-relative sequence of directions.
// The zero value is the root path.
type Path struct {
	dirs []Direction
}

// Root returns the empty path, which refers to the whole environment.
func Root() Path {
	return Path{}
}

// New builds a path from directions ordered from the root downwards.
func New(dirs ...Direction) Path {
	return Path{dirs: append([]Direction(nil), dirs...)}
}

// Descend returns a new path with d appended as the deepest step.
func (p Path) Descend(d Direction) Path {
	dirs := make([]Direction, len(p.dirs), len(p.dirs)+1)
	copy(dirs, p.dirs)

	return Path{dirs: append(dirs, d)}
}

// First is shorthand for Descend(Left).
func (p Path) First() Path {
	return p.Descend(Left)
}

// Rest is shorthand for Descend(Right).
func (p Path) Rest() Path {
	return p.Descend(Right)
}

// Append returns p followed by every step of child.
func (p Path) Append(child Path) Path {
	dirs := make([]Direction, 0, len(p.dirs)+len(child.dirs))
	dirs = append(dirs, p.dirs...)

	return Path{dirs: append(dirs, child.dirs...)}
}

// Len returns the number of steps.
func (p Path) Len() int {
	return len(p.dirs)
}

// IsRoot reports whether p has no steps.
func (p Path) IsRoot() bool {
	return len(p.dirs) == 0
}

// At returns the i-th step counted from the root.
func (p Path) At(i int) Direction {
	return p.dirs[i]
}

// Directions returns a copy of the steps.
func (p Path) Directions() []Direction {
	return append([]Direction(nil), p.dirs...)
}

// Equal reports whether both paths have the same steps.
func (p Path) Equal(other Path) bool {
	if len(p.dirs) != len(other.dirs) {
		return false
	}

	for i, d := range p.dirs {
		if other.dirs[i] != d {
			return false
		}
	}

	return true
}

// String renders the compact notation accepted by Parse ("LRL"). The root is ".".
func (p Path) String() string {
	if len(p.dirs) == 0 {
		return "."
	}

	var b strings.Builder
	for _, d := range p.dirs {
		b.WriteString(d.String())
	}

	return b.String()
}

// Encode returns the environment address of p.
func (p Path) Encode() Address {
	return Encode(p)
}
