// Package assign fills open encounter slots with random, distinct monsters.
package assign

import (
	"context"
	"math/rand"

	platformotel "github.com/louisbranch/spawning/internal/platform/otel"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Output is a fully resolved roster: every slot has a monster and excluded
// slots are gone.
type Output []catalog.Slot

// Phase reports which pool produced an assignment.
type Phase int

const (
	// PhaseNone means no assignment was found.
	PhaseNone Phase = iota
	// PhaseDistinct avoided every monster already bound in the selection.
	PhaseDistinct
	// PhaseRelaxed allowed monsters already bound elsewhere.
	PhaseRelaxed
)

// Engine computes assignments over one monster roster. It is not safe for
// concurrent use because it owns its random source.
type Engine struct {
	monsters *catalog.Monsters
	rng      *rand.Rand
	tracer   trace.Tracer
}

// NewEngine returns an engine drawing shuffles from rng.
func NewEngine(monsters *catalog.Monsters, rng *rand.Rand) *Engine {
	return &Engine{
		monsters: monsters,
		rng:      rng,
		tracer:   platformotel.Tracer("assign"),
	}
}

type demandKey struct {
	color game.Color
	tier  game.Tier
}

type demand struct {
	keys   []demandKey
	counts map[demandKey]int
}

// Compute binds every open slot of selection to a monster of its color from
// the enabled expansions, with no monster used twice. Slots bound already
// are kept; excluded slots are dropped. It reports false when the enabled
// monsters cannot cover the demand.
func (e *Engine) Compute(ctx context.Context, selection []catalog.Slot, enabled game.ExpansionSet) (Output, bool) {
	out, phase := e.compute(ctx, selection, enabled)
	return out, phase != PhaseNone
}

// ComputePhase is Compute that also reports which pool succeeded.
func (e *Engine) ComputePhase(ctx context.Context, selection []catalog.Slot, enabled game.ExpansionSet) (Output, Phase) {
	return e.compute(ctx, selection, enabled)
}

func (e *Engine) compute(ctx context.Context, selection []catalog.Slot, enabled game.ExpansionSet) (Output, Phase) {
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := e.tracer.Start(ctx, "assign.Compute", trace.WithAttributes(
		attribute.Int("spawn.selection.size", len(selection)),
		attribute.String("spawn.expansions", enabled.String()),
	))
	defer span.End()

	available := e.monsters.InExpansions(enabled)
	want, fixed := tally(selection)

	candidates := make([]*catalog.Monster, 0, len(available))
	for _, m := range available {
		if !fixed[m] {
			candidates = append(candidates, m)
		}
	}

	phase := PhaseDistinct
	bindings, ok := e.match(candidates, want)
	if !ok {
		phase = PhaseRelaxed
		bindings, ok = e.match(available, want)
	}
	if !ok {
		span.SetAttributes(attribute.Int("spawn.phase", int(PhaseNone)))
		return nil, PhaseNone
	}
	span.SetAttributes(attribute.Int("spawn.phase", int(phase)))
	return materialize(selection, bindings), phase
}

// fillable reports whether an open slot can be drawn from the pool. Slots
// without a color have nothing to match on; a special slot whose stand-in
// was unbound keeps its color and is drawn like any other.
func fillable(s catalog.Slot) bool {
	return !s.Exclude && !s.Resolved() && s.Color != game.ColorUnspecified
}

func tally(selection []catalog.Slot) (demand, map[*catalog.Monster]bool) {
	d := demand{counts: map[demandKey]int{}}
	fixed := map[*catalog.Monster]bool{}
	for _, s := range selection {
		if s.Resolved() {
			fixed[s.Monster] = true
			continue
		}
		if !fillable(s) {
			continue
		}
		k := demandKey{color: s.Color, tier: s.Tier}
		if d.counts[k] == 0 {
			d.keys = append(d.keys, k)
		}
		d.counts[k]++
	}
	return d, fixed
}

func (e *Engine) match(source []*catalog.Monster, want demand) (map[demandKey][]*catalog.Monster, bool) {
	pool := make([]*catalog.Monster, len(source))
	copy(pool, source)
	e.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	bindings := make(map[demandKey][]*catalog.Monster, len(want.keys))
	for _, k := range want.keys {
		for n := 0; n < want.counts[k]; n++ {
			idx := -1
			for i, m := range pool {
				if m.Color == k.color {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, false
			}
			bindings[k] = append(bindings[k], pool[idx])
			pool = append(pool[:idx], pool[idx+1:]...)
		}
	}
	return bindings, true
}

func materialize(selection []catalog.Slot, bindings map[demandKey][]*catalog.Monster) Output {
	out := make(Output, 0, len(selection))
	used := map[demandKey]int{}
	for _, s := range selection {
		if s.Exclude {
			continue
		}
		if s.Resolved() {
			out = append(out, s)
			continue
		}
		if !fillable(s) {
			continue
		}
		k := demandKey{color: s.Color, tier: s.Tier}
		s.Monster = bindings[k][used[k]]
		s.Preset = false
		used[k]++
		out = append(out, s)
	}
	return out
}
