package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/planilla-ledger/dto"
	"github.com/Aashish23092/planilla-ledger/utils"
)

type rowResult struct {
	outcome dto.RowOutcome
	record  dto.CanonicalRecord
}

// LedgerBuilder turns the ordered page stream into a ledger. Pages are
// processed by a bounded worker pool; every page writes into its own slot so
// the merge restores document order without locking.
type LedgerBuilder struct {
	heuristics utils.Heuristics
	workers    int
}

func NewLedgerBuilder(heuristics utils.Heuristics, workers int) *LedgerBuilder {
	if workers < 1 {
		workers = 1
	}
	return &LedgerBuilder{
		heuristics: heuristics,
		workers:    workers,
	}
}

// Build runs the pipeline over every page. Cancellation is honoured between
// pages only.
func (b *LedgerBuilder) Build(ctx context.Context, pages []dto.Page) (*dto.Ledger, error) {
	slots := make([][]rowResult, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, page := range pages {
		if gctx.Err() != nil {
			break
		}
		i, page := i, page
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = b.processPage(page)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ledger := &dto.Ledger{Schema: b.heuristics.Schema}
	for _, results := range slots {
		for _, res := range results {
			ledger.Outcomes = append(ledger.Outcomes, res.outcome)
			if res.outcome.Kept {
				ledger.Records = append(ledger.Records, res.record)
			}
		}
	}

	if len(ledger.Records) > 0 || b.heuristics.EmptyTotals {
		totals := utils.AggregateTotals(ledger.Records, b.heuristics.SchemaSize())
		ledger.Totals = &totals
	}

	return ledger, nil
}

func (b *LedgerBuilder) processPage(page dto.Page) []rowResult {
	results := make([]rowResult, len(page.Rows))
	for i, row := range page.Rows {
		rec, reason, ok := utils.BuildRecord(row, b.heuristics)
		results[i] = rowResult{
			outcome: dto.RowOutcome{
				Page:   page.Number,
				Row:    i + 1,
				Kept:   ok,
				Reason: reason,
				Text:   utils.JoinRow(row),
			},
			record: rec,
		}
	}
	return results
}
