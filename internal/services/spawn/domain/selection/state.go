// Package selection holds the mutable encounter a user is building and
// keeps its assignment current.
package selection

import (
	"context"
	"strconv"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/assign"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// ErrSlotIndex is returned when a slot position does not exist.
var ErrSlotIndex = apperrors.New(apperrors.CodeSlotIndexOutOfRange, "slot index out of range")

// Assigner fills open slots.
type Assigner interface {
	Compute(ctx context.Context, selection []catalog.Slot, enabled game.ExpansionSet) (assign.Output, bool)
}

// State is one encounter under construction. Every mutation recomputes the
// output before returning. State is not safe for concurrent use.
type State struct {
	assigner Assigner
	enabled  game.ExpansionSet
	slots    []catalog.Slot
	preset   *catalog.Setup
	output   assign.Output
	failed   bool
}

// NewState returns an empty selection over the enabled expansions.
func NewState(assigner Assigner, enabled game.ExpansionSet) *State {
	return &State{assigner: assigner, enabled: enabled}
}

// AddSlot appends a custom slot. A nil monster leaves it open.
func (s *State) AddSlot(ctx context.Context, number game.Number, color game.Color, tier game.Tier, monster *catalog.Monster) {
	s.slots = append(s.slots, catalog.Slot{
		Number:  number,
		Color:   color,
		Tier:    tier,
		Monster: monster,
	})
	s.preset = nil
	s.recompute(ctx)
}

// Exclude keeps monster out of every random pick without showing it.
func (s *State) Exclude(ctx context.Context, monster *catalog.Monster) {
	s.slots = append(s.slots, catalog.Slot{Exclude: true, Monster: monster})
	s.preset = nil
	s.recompute(ctx)
}

// RemoveSlot deletes the slot at index.
func (s *State) RemoveSlot(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.slots) {
		return apperrors.WrapWithMetadata(apperrors.CodeSlotIndexOutOfRange,
			"remove slot "+strconv.Itoa(index),
			map[string]string{"Index": strconv.Itoa(index)}, ErrSlotIndex)
	}
	s.slots = append(s.slots[:index], s.slots[index+1:]...)
	s.preset = nil
	s.recompute(ctx)
	return nil
}

// Randomize draws a new assignment for the same slots.
func (s *State) Randomize(ctx context.Context) {
	s.recompute(ctx)
}

// ToggleExpansion flips exp and unbinds every slot holding a monster of a
// pack that is no longer enabled. Unbound slots keep their color, tier and
// preset mark and are drawn again.
func (s *State) ToggleExpansion(ctx context.Context, exp game.Expansion) {
	s.SetEnabled(ctx, s.enabled.Toggle(exp))
}

// SetEnabled replaces the enabled expansions, with the same unbinding as
// ToggleExpansion.
func (s *State) SetEnabled(ctx context.Context, enabled game.ExpansionSet) {
	s.enabled = enabled
	for i := range s.slots {
		m := s.slots[i].Monster
		if m == nil || m.IsPureSpecial() || m.Expansion == game.ExpansionUnspecified {
			continue
		}
		if !enabled.Has(m.Expansion) {
			s.slots[i].Monster = nil
		}
	}
	s.preset = nil
	s.recompute(ctx)
}

// LoadPreset replaces the slots with the setup's roster.
func (s *State) LoadPreset(ctx context.Context, setup *catalog.Setup) {
	s.slots = setup.Roster()
	s.preset = setup
	s.recompute(ctx)
}

// Clear drops every slot and the active preset.
func (s *State) Clear(ctx context.Context) {
	s.slots = nil
	s.preset = nil
	s.recompute(ctx)
}

func (s *State) recompute(ctx context.Context) {
	out, ok := s.assigner.Compute(ctx, s.slots, s.enabled)
	if !ok {
		s.output = nil
		s.failed = len(s.slots) > 0
		return
	}
	s.output = out
	s.failed = false
}

// Output returns the last assignment. It is empty after a failure.
func (s *State) Output() assign.Output {
	out := make(assign.Output, len(s.output))
	copy(out, s.output)
	return out
}

// Failed reports whether the last recompute found no assignment.
func (s *State) Failed() bool {
	return s.failed
}

// ActivePreset returns the loaded setup, or nil after a custom edit.
func (s *State) ActivePreset() *catalog.Setup {
	return s.preset
}

// Slots returns a copy of the current slots.
func (s *State) Slots() []catalog.Slot {
	out := make([]catalog.Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Enabled returns the enabled expansions.
func (s *State) Enabled() game.ExpansionSet {
	return s.enabled
}
