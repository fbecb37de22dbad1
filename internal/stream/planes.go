package stream

import (
	"fmt"

	"github.com/meigma/trico/internal/plane"
	"github.com/meigma/trico/internal/tricotype"
)

// checkShape validates an interleaved array before it is split.
func checkShape(n, components int) error {
	switch components {
	case 1, 2, 3:
	default:
		return fmt.Errorf("%w: %d components per element", tricotype.ErrInvalidInput, components)
	}
	if n%components != 0 {
		return fmt.Errorf("%w: %d values is not a multiple of %d components",
			tricotype.ErrInvalidInput, n, components)
	}
	if uint64(n/components) > tricotype.MaxElements {
		return fmt.Errorf("%w: %d values per plane exceed the block limit",
			tricotype.ErrInvalidInput, n/components)
	}
	return nil
}

func splitPlanes[T any](values []T, components int) [][]T {
	switch components {
	case 2:
		u, v := plane.Split2(values)
		return [][]T{u, v}
	case 3:
		x, y, z := plane.Split3(values)
		return [][]T{x, y, z}
	default:
		return [][]T{values}
	}
}

func mergePlanes[T any](planes [][]T) []T {
	switch len(planes) {
	case 2:
		return plane.Merge2(planes[0], planes[1])
	case 3:
		return plane.Merge3(planes[0], planes[1], planes[2])
	default:
		return planes[0]
	}
}
