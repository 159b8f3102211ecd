package collector

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"SIPCompare/internal/apperrors"
	"SIPCompare/internal/model"
	"SIPCompare/internal/series"
)

// Entry binds an instrument to the source of its price history.
type Entry struct {
	Instrument model.Instrument
	Source     Source
}

// Catalog holds the loaded series. It is built once and only read afterwards.
type Catalog struct {
	instruments []model.Instrument
	series      map[string]*model.PriceSeries
}

// Series returns the loaded series and metadata for symbol.
func (c *Catalog) Series(symbol string) (*model.PriceSeries, model.Instrument, error) {
	for _, inst := range c.instruments {
		if inst.Symbol == symbol {
			return c.series[symbol], inst, nil
		}
	}
	return nil, model.Instrument{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownInstrument, symbol)
}

// Instruments lists instruments in registration order.
func (c *Catalog) Instruments() []model.Instrument {
	out := make([]model.Instrument, len(c.instruments))
	copy(out, c.instruments)
	return out
}

// Collector loads every registered dataset into a Catalog.
type Collector struct {
	Entries []Entry
}

// NewCollector creates a new Collector.
func NewCollector(entries ...Entry) *Collector {
	return &Collector{Entries: entries}
}

// Collect reads and orders all datasets concurrently. Any failure aborts the whole load.
func (c *Collector) Collect(ctx context.Context) (*Catalog, error) {
	loaded := make([]*model.PriceSeries, len(c.Entries))
	seen := make(map[string]bool, len(c.Entries))
	for _, e := range c.Entries {
		if seen[e.Instrument.Symbol] {
			return nil, fmt.Errorf("duplicate instrument %s", e.Instrument.Symbol)
		}
		seen[e.Instrument.Symbol] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range c.Entries {
		i, e := i, e
		g.Go(func() error {
			rows, err := e.Source.Records(gctx)
			if err != nil {
				return fmt.Errorf("%s from %s: %w", e.Instrument.Symbol, e.Source.Name(), err)
			}
			s, err := series.Load(e.Instrument.Symbol, rows)
			if err != nil {
				return err
			}
			loaded[i] = s
			log.Printf("[INFO] loaded %s: %d periods from %s", e.Instrument.Symbol, s.Len(), e.Source.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect datasets: %w", err)
	}

	cat := &Catalog{series: make(map[string]*model.PriceSeries, len(loaded))}
	for i, e := range c.Entries {
		cat.instruments = append(cat.instruments, e.Instrument)
		cat.series[e.Instrument.Symbol] = loaded[i]
	}
	return cat, nil
}
