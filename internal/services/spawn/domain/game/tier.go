package game

import "fmt"

// Rank is the difficulty of a regular monster.
type Rank uint8

const (
	// RankNone marks the special arm of a Tier.
	RankNone Rank = iota
	RankRookie
	RankFighter
	RankVeteran
	RankChampion
)

var rankInfo = map[Rank]struct{ id, key string }{
	RankRookie:   {id: "Ro", key: "rookie"},
	RankFighter:  {id: "Fi", key: "fighter"},
	RankVeteran:  {id: "Ve", key: "veteran"},
	RankChampion: {id: "Ch", key: "champion"},
}

// Ranks lists ranks from weakest to strongest.
func Ranks() []Rank {
	return []Rank{RankRookie, RankFighter, RankVeteran, RankChampion}
}

// ID returns the two letter slot code ("Ro", "Fi", "Ve", "Ch").
func (r Rank) ID() string {
	info, ok := rankInfo[r]
	if !ok {
		panic(&InvalidOperandError{Operand: fmt.Sprintf("Rank(%d)", uint8(r)), Op: "ID"})
	}
	return info.id
}

// Name returns the localized rank name.
func (r Rank) Name(lang Language) string {
	info, ok := rankInfo[r]
	if !ok {
		panic(&InvalidOperandError{Operand: fmt.Sprintf("Rank(%d)", uint8(r)), Op: "Name"})
	}
	return lang.text("game.rank." + info.key)
}

// ParseRankID matches a two letter slot code.
func ParseRankID(id string) (Rank, error) {
	for r, info := range rankInfo {
		if info.id == id {
			return r, nil
		}
	}
	return RankNone, fmt.Errorf("unknown rank %q", id)
}

// Tier is either a rank or, for commanders and specials, a special payload.
// Tier is comparable and used as part of demand keys.
type Tier struct {
	Rank Rank
	Kind SpecialKind
}

// RankTier returns the regular tier for r.
func RankTier(r Rank) Tier {
	return Tier{Rank: r}
}

// SpecialTier returns the special arm; kind may be SpecialNone.
func SpecialTier(kind SpecialKind) Tier {
	return Tier{Kind: kind}
}

// IsSpecial reports the special arm.
func (t Tier) IsSpecial() bool {
	return t.Rank == RankNone
}

// Name returns the rank or special unit name. A special tier without a
// kind has no name.
func (t Tier) Name(lang Language) string {
	if !t.IsSpecial() {
		return t.Rank.Name(lang)
	}
	if t.Kind == SpecialNone {
		return ""
	}
	return t.Kind.Name(lang)
}

func (t Tier) String() string {
	if !t.IsSpecial() {
		return t.Rank.ID()
	}
	if t.Kind == SpecialNone {
		return "Special"
	}
	return "Special(" + t.Kind.Name(LanguageEN) + ")"
}
