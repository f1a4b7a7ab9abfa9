package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/recordrt/internal/config"
	"github.com/vk/recordrt/internal/ctxlog"
	"github.com/vk/recordrt/internal/record"
	"golang.org/x/sync/errgroup"
)

// Run loads every literal under cfg.LiteralPath, builds the records and
// writes one `name = rendering` line per literal in declaration order.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, cfg.LiteralPath)
	if err != nil {
		return fmt.Errorf("failed to load literals: %w", err)
	}
	if len(model.Literals) == 0 {
		a.logger.Warn("No record literals found.", "path", cfg.LiteralPath)
		return nil
	}

	records, err := a.buildAll(ctx, model.Literals, cfg.WorkerCount)
	if err != nil {
		return err
	}

	for i, lit := range model.Literals {
		if _, err := fmt.Fprintf(a.outW, "%s = %s\n", lit.Name, a.render(records[i], cfg.Mode)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	a.reportDuplicates(model.Literals, records)

	a.logger.Info("Records built.",
		"records", len(records),
		"shapes", a.factory.Shapes().Len(),
		"types", a.factory.Types().Len(),
	)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// buildAll builds the records for lits concurrently, keeping their order.
func (a *App) buildAll(ctx context.Context, lits []*config.Literal, workers int) ([]*record.Record, error) {
	records := make([]*record.Record, len(lits))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, lit := range lits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := a.build(lit)
			if err != nil {
				return fmt.Errorf("record %q: %w", lit.Name, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// build turns a literal into a record, building nested literals first. A
// factory panic (only raised when key checks are enabled) is returned as an
// error.
func (a *App) build(lit *config.Literal) (rec *record.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	values := make([]any, len(lit.Values))
	for i, v := range lit.Values {
		nested, ok := v.(*config.Literal)
		if !ok {
			values[i] = v
			continue
		}
		values[i], err = a.build(nested)
		if err != nil {
			return nil, err
		}
	}
	return a.factory.MakeRecord(lit.Key, lit.Positional, lit.Labels, values), nil
}

// render formats rec in the given mode. A plain rendering that fails falls
// back to safe mode.
func (a *App) render(rec *record.Record, mode string) string {
	if mode == ModeSafe {
		return rec.StringSafe()
	}
	s, err := rec.TryString()
	if err != nil {
		var printErr *record.PrintError
		if errors.As(err, &printErr) {
			a.logger.Warn("Plain rendering failed, using safe mode.", "error", err)
			return printErr.Record
		}
		return rec.StringSafe()
	}
	return s
}

// reportDuplicates logs literals whose records equal an earlier one.
func (a *App) reportDuplicates(lits []*config.Literal, records []*record.Record) {
	byHash := make(map[uint64][]int)
	for i, rec := range records {
		h := rec.Hash()
		for _, j := range byHash[h] {
			if records[j].Equal(rec) {
				a.logger.Info("Record equals an earlier literal.", "record", lits[i].Name, "same_as", lits[j].Name)
				break
			}
		}
		byHash[h] = append(byHash[h], i)
	}
}
