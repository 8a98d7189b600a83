// Package slaycache memoizes the value of slay flag combinations found on
// ego item templates, for item power scoring.
package slaycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/metrics"
	"github.com/udisondev/slays/internal/model"
)

// Entry is one cached combination and its value.
type Entry struct {
	Flags flags.Set
	Value int32
}

// Cache maps slay flag combinations to values. Membership is fixed by Build;
// afterwards only values change.
type Cache struct {
	mu     sync.RWMutex
	values map[flags.Set]int32
	order  []flags.Set // build order, for stable listing
}

// Build collects every distinct non-empty (flags ∩ mask) of the templates,
// each with value 0.
func Build(templates []*model.EgoItem, mask flags.Set) *Cache {
	c := &Cache{
		values: make(map[flags.Set]int32, len(templates)),
		order:  make([]flags.Set, 0, len(templates)),
	}

	for _, e := range templates {
		combo := e.Flags.Intersect(mask)
		if combo.IsEmpty() {
			continue
		}
		if _, dup := c.values[combo]; dup {
			continue
		}
		c.values[combo] = 0
		c.order = append(c.order, combo)
	}

	metrics.SlayCacheEntries.Set(float64(len(c.order)))
	slog.Info("slay cache built", "templates", len(templates), "combinations", len(c.order))
	return c
}

// Len returns the number of cached combinations.
func (c *Cache) Len() int {
	return len(c.order)
}

// Lookup returns the value of combo. Not found is a normal outcome: ok is
// false and the value is 0.
func (c *Cache) Lookup(combo flags.Set) (value int32, ok bool) {
	c.mu.RLock()
	value, ok = c.values[combo]
	c.mu.RUnlock()

	if ok {
		metrics.SlayCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
	} else {
		metrics.SlayCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
	}
	return value, ok
}

// Fill stores value for combo. It reports false, changing nothing, when
// combo was not seen at build time.
func (c *Cache) Fill(combo flags.Set, value int32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[combo]; !ok {
		return false
	}
	c.values[combo] = value
	return true
}

// Entries returns every combination with its current value, in build order.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.order))
	for _, f := range c.order {
		out = append(out, Entry{Flags: f, Value: c.values[f]})
	}
	return out
}

// ValueFunc computes the value of one combination.
type ValueFunc func(ctx context.Context, combo flags.Set) (int32, error)

// Compute fills every entry with fn, running up to workers calls at once.
// Values depend only on their combination, so the order of writes is irrelevant.
func (c *Cache) Compute(ctx context.Context, workers int, fn ValueFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, combo := range c.order {
		g.Go(func() error {
			v, err := fn(ctx, combo)
			if err != nil {
				return fmt.Errorf("computing value of %s: %w", combo, err)
			}
			c.Fill(combo, v)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("slay cache values computed", "combinations", len(c.order), "workers", workers)
	return nil
}
