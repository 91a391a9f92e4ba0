package routerapi

import (
	"context"
	"errors"

	"github.com/openpcb/autoroute/batch"
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/maze"
)

// defaultClearanceClass is used when a caller does not otherwise specify
// one; RouteConnection's signature is fixed by §6 and carries no
// clearance-class parameter, so every connection routed through it uses
// the board's class 0, a simplification recorded in DESIGN.md.
const defaultClearanceClass = 0

// RouteConnection routes a single connection from start to dest on b
// under control block cb, per §6. It is a no-op (AlreadyConnected) if
// start and dest name the same single item, and NoConnections if either
// set is empty — both checked before anything else touches b or ctx.
func RouteConnection(ctx context.Context, b *board.Board, start, dest []board.ItemID, cb control.Block) (Result, []board.ItemID, error) {
	if len(start) == 0 || len(dest) == 0 {
		return NoConnections, nil, nil
	}
	if len(start) == 1 && len(dest) == 1 && start[0] == dest[0] {
		return AlreadyConnected, nil, nil
	}

	if err := ctx.Err(); err != nil {
		return classifyCtxResult(err), nil, nil
	}

	netID, err := commonNet(b, start)
	if err != nil {
		return Failed, nil, err
	}

	result, searchErr := maze.Search(ctx, b, netID, defaultClearanceClass, start, dest, cb, nil)
	if searchErr != nil {
		return Failed, nil, searchErr
	}

	switch result.Outcome {
	case maze.Stopped:
		return classifyCtxResult(ctx.Err()), nil, nil
	case maze.NotFound:
		return NotRouted, nil, nil
	}

	if applyErr := batch.ApplyPath(b, netID, defaultClearanceClass, cb, &result); applyErr != nil {
		if errors.Is(applyErr, batch.ErrInsertConflict) {
			return InsertError, nil, nil
		}

		return Failed, nil, applyErr
	}

	return Routed, result.Synthesized, nil
}

// BatchRoute runs the multi-pass controller of §4.9 over every
// incomplete connection on b.
func BatchRoute(ctx context.Context, b *board.Board, cfg batch.Config) (batch.Report, error) {
	return batch.Run(ctx, b, cfg)
}

// commonNet returns the single net every item in ids shares, or
// ErrNoCommonNet if they do not agree on one.
func commonNet(b *board.Board, ids []board.ItemID) (board.NetID, error) {
	first, err := b.Item(ids[0])
	if err != nil {
		return 0, err
	}
	if len(first.Nets) == 0 {
		return 0, ErrNoCommonNet
	}
	net := first.Nets[0]
	for _, id := range ids[1:] {
		it, itErr := b.Item(id)
		if itErr != nil {
			return 0, itErr
		}
		if !it.HasNet(net) {
			return 0, ErrNoCommonNet
		}
	}

	return net, nil
}

// classifyCtxResult distinguishes a deadline from an explicit
// cancellation so the caller sees TimedOut vs Stopped, per §6/§5.
func classifyCtxResult(err error) Result {
	if errors.Is(err, context.DeadlineExceeded) {
		return TimedOut
	}

	return Stopped
}
