package bidirectional

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunConcurrent runs the forward and backward passes as two cooperating
// tasks and joins them before the caller concatenates: they write only
// into their own buckets/pool/c̄, so no further synchronization is needed
// between them.
func RunConcurrent(ctx context.Context, fwd, bwd *Pass) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fwd.Run(ctx) })
	g.Go(func() error { return bwd.Run(ctx) })
	return g.Wait()
}
