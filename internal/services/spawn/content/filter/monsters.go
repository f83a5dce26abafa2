package filter

import (
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
)

// MonsterResolver exposes a monster's filterable fields.
func MonsterResolver(m *catalog.Monster) Resolver {
	return func(name string) (any, bool) {
		switch name {
		case "name":
			return m.NameEN, true
		case "name_de":
			return m.NameDE, true
		case "expansion":
			return m.Expansion.String(), true
		case "color":
			return m.Color.String(), true
		case "represented":
			return m.RepresentedBy != "", true
		default:
			return nil, false
		}
	}
}

// Monsters returns the monsters of list matching filterStr, in order.
func Monsters(list []*catalog.Monster, filterStr string) ([]*catalog.Monster, error) {
	parsed, err := Parse(filterStr, MonsterFields)
	if err != nil {
		return nil, err
	}
	out := make([]*catalog.Monster, 0, len(list))
	for _, m := range list {
		ok, err := Evaluate(parsed, MonsterResolver(m))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}
