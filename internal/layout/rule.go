package layout

// Rule is a predicate over rack slots. Missing-location rules suppress
// every slot they match; type rules assign Type to the first-matching
// slot.
type Rule struct {
	Aisle    Selector
	Level    Selector
	Module   Selector
	Depth    Selector
	Position Selector

	// Type is the location type assigned by a type-override rule.
	// Ignored for missing-location rules.
	Type string
}

// Matches reports whether the rule's five selectors all accept the slot.
func (r Rule) Matches(l Location) bool {
	return r.Aisle.Matches(l.Aisle) &&
		r.Level.Matches(l.Level) &&
		r.Module.Matches(l.Module) &&
		r.Depth.Matches(l.Depth) &&
		r.Position.Matches(l.Position)
}

// IsMissing reports whether any missing-location rule suppresses the slot.
func IsMissing(l Location, missing []Rule) bool {
	for _, r := range missing {
		if r.Matches(l) {
			return true
		}
	}
	return false
}

// ResolveType returns the location type for the slot: the Type of the
// first matching rule, or DefaultType when no rule matches. Rules with
// an empty Type are skipped rather than assigning an unnamed type.
func ResolveType(l Location, types []Rule) string {
	for _, r := range types {
		if r.Type == "" {
			continue
		}
		if r.Matches(l) {
			return r.Type
		}
	}
	return DefaultType
}
