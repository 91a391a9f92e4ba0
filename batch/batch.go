package batch

import (
	"context"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/discover"
	"github.com/openpcb/autoroute/maze"
)

// ripupEscalationPerPass is §4.9's per-pass rip-up budget escalation
// factor (`startRipupCosts × (1 + pass_no × escalation)`). Only the
// budget escalates here; the per-item rip-up cost maze.Search charges
// stays flat pass-over-pass (see its baseRipupItemCost doc comment), so
// a later pass can simply afford more of the same-cost rip-ups rather
// than both sides of the comparison growing together.
const ripupEscalationPerPass = 0.5

// Run drives the pass loop of §4.9: each pass discovers every incomplete
// connection, attempts to route each (sorted by air-wire distance) with
// an escalating rip-up budget, and applies every successful path to b.
// The loop stops after cfg.MaxPasses, when no incomplete connections
// remain, when a pass makes no progress, or when ctx is done.
//
// Run is grounded on tsp's top-level "iterate, call into a
// sub-algorithm per item, track whether this round improved" driver
// shape (tsp runs multiple heuristics per round and keeps the best; Run
// runs one maze.Search per incomplete connection per round and keeps
// whichever succeed).
func Run(ctx context.Context, b *board.Board, cfg Config) (Report, error) {
	var report Report
	consecutiveNoProgress := 0

	for passNo := 0; passNo < cfg.MaxPasses; passNo++ {
		if err := ctx.Err(); err != nil {
			report.Stopped, report.TimedOut = classifyDone(err)

			break
		}

		incompletes, err := discover.Discover(b)
		if err != nil {
			return report, err
		}
		if len(incompletes) == 0 {
			break
		}

		pr := PassReport{PassNo: passNo, IncompleteBefore: len(incompletes)}

		escalation := 1 + float64(passNo)*ripupEscalationPerPass
		blk := control.Apply(cfg.BaseBlock,
			control.WithRipupPassNo(passNo),
			control.WithRipupBudget(cfg.StartRipupCosts*escalation),
		)

		ripupTally := make(map[board.ItemID]int)

		for _, ic := range incompletes {
			if err := ctx.Err(); err != nil {
				report.Stopped, report.TimedOut = classifyDone(err)

				break
			}

			result, searchErr := maze.Search(ctx, b, ic.Net, cfg.ClearanceClass,
				[]board.ItemID{ic.From}, []board.ItemID{ic.To}, blk, ripupTally)
			if searchErr != nil {
				continue
			}
			if result.Outcome != maze.Found {
				continue
			}
			if applyErr := ApplyPath(b, ic.Net, cfg.ClearanceClass, blk, &result); applyErr != nil {
				continue
			}
			for _, id := range result.RippedItems {
				ripupTally[id]++
			}

			pr.RoutedConnections++
			pr.AggregateLength += pathLength(result.Path)
		}

		if cfg.RemoveUnconnectedVias {
			removeUnconnectedVias(b)
		}

		after, discErr := discover.Discover(b)
		if discErr != nil {
			return report, discErr
		}
		pr.IncompleteAfter = len(after)

		// Progress rule (§4.9): this pass must either close at least one
		// incomplete connection, or — equivalently, since a path once
		// applied is immediately reflected in the next discover call —
		// have routed at least one connection this round.
		switch {
		case report.Stopped || report.TimedOut:
			pr.Outcome = PassStopped
		case pr.IncompleteAfter < pr.IncompleteBefore || pr.RoutedConnections > 0:
			pr.Outcome = Progressed
		default:
			pr.Outcome = NoProgress
		}

		report.Passes = append(report.Passes, pr)
		report.Remaining = pr.IncompleteAfter

		if pr.Outcome == Progressed {
			consecutiveNoProgress = 0

			continue
		}

		// A single no-progress pass does not by itself mean later passes
		// are futile: the rip-up budget still escalates pass-over-pass
		// (§4.9), so an item that was unaffordable to rip up this pass may
		// become affordable next pass with nothing else about the board
		// having changed. Only two consecutive no-progress passes — one
		// escalation step that still changed nothing — mean a further
		// escalation is not going to help either, so the run stops rather
		// than spin to MaxPasses.
		consecutiveNoProgress++
		if pr.Outcome == PassStopped || consecutiveNoProgress >= 2 {
			break
		}
	}

	return report, nil
}

func classifyDone(err error) (stopped, timedOut bool) {
	if err == context.DeadlineExceeded {
		return false, true
	}

	return true, false
}

func pathLength(path []maze.Vertex) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].Point.Distance(path[i].Point)
	}

	return total
}

// removeUnconnectedVias deletes every router-synthesized via left with
// nothing attached to one of its layer ends, per §4.9's end-of-pass
// housekeeping step.
func removeUnconnectedVias(b *board.Board) {
	for _, it := range b.AllOnBoard() {
		if it.Kind != board.KindVia || it.Fixed != board.NotFixed {
			continue
		}
		if hasNeighborAtBothEnds(b, it) {
			continue
		}
		_ = b.RemoveItem(it.ID)
	}
}

func hasNeighborAtBothEnds(b *board.Board, via *board.Item) bool {
	fromLayer, toLayer := via.ViaPadstack.LayerSpan()

	return hasNeighborOnLayer(b, via, fromLayer) && hasNeighborOnLayer(b, via, toLayer)
}

func hasNeighborOnLayer(b *board.Board, via *board.Item, layer int) bool {
	for _, it := range b.ItemsOnNet(via.Nets[0]) {
		if it.ID == via.ID {
			continue
		}
		if it.Kind == board.KindTrace && it.TraceLayer == layer {
			if b.PhysicallyConnected(via, it) {
				return true
			}
		}
		if it.Kind == board.KindPin {
			from, to := it.PinPadstack.LayerSpan()
			if layer >= from && layer <= to && b.PhysicallyConnected(via, it) {
				return true
			}
		}
	}

	return false
}
