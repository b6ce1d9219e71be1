package driver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CompileFiles compiles each file independently, at most opts.Workers at
// a time. The units are returned in the order of files. The error is the
// first I/O failure; on failure the remaining files are cancelled.
func CompileFiles(ctx context.Context, files []string, opts Options) ([]*Unit, error) {
	units := make([]*Unit, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			u, err := CompileFile(gctx, name, opts)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}
