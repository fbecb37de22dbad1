package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/trico"
	"github.com/meigma/trico/internal/platform"
)

func (c *command) inspect() error {
	if err := c.want(1, "in.trc"); err != nil {
		return err
	}
	in := c.args[0]

	m, err := platform.Open(in)
	if err != nil {
		return err
	}
	defer m.Close()

	opts, err := c.cfg.options(c.logger)
	if err != nil {
		return err
	}
	r, err := trico.NewReader(m.Bytes(), opts...)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer r.Close()

	fmt.Fprintf(c.stdout, "%s: version %d, %d bytes, %s\n", in, r.Version(), len(m.Bytes()), digest.FromBytes(m.Bytes()))
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tTYPE\tCOUNT\tOFFSET\tBYTES")
	for info, err := range r.Streams() {
		if err != nil {
			_ = tw.Flush()
			return fmt.Errorf("inspect %s: %w", in, err)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", info.Type, info.Type, info.Count, info.Offset, info.Size)
	}
	return tw.Flush()
}
