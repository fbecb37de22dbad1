package stream

import (
	"golang.org/x/sync/errgroup"
)

// each calls fn for every plane index in [0, n). Planes are processed
// concurrently when the configuration allows it and the array is large
// enough; fn must only write to its own index.
func (c *config) each(n, values int, fn func(i int) error) error {
	if c.concurrency <= 1 || n <= 1 || values < parallelMinValues {
		for i := range n {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var eg errgroup.Group
	eg.SetLimit(c.concurrency)
	for i := range n {
		eg.Go(func() error {
			return fn(i)
		})
	}
	return eg.Wait()
}
