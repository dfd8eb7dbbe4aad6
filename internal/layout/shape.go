package layout

// Rack side identifiers. Every aisle has storage rows on both sides of
// the travel corridor.
const (
	SideLeft  = 0
	SideRight = 1
	NumSides  = 2
)

// DefaultType is assigned to every location not matched by a type rule.
const DefaultType = "Storage"

// Shape describes the parametric dimensions of a warehouse rack layout.
// It is treated as immutable for the duration of one build.
type Shape struct {
	Aisles             int
	ModulesPerAisle    int
	LocationsPerModule int
	StorageDepth       int
	LevelsPerAisle     []int
}

// Levels returns the number of levels configured for the given aisle.
// Aisles beyond the configured levels array have zero levels, so a
// partially-invalid configuration still renders its valid subset.
func (s Shape) Levels(aisle int) int {
	if aisle < 0 || aisle >= len(s.LevelsPerAisle) {
		return 0
	}
	n := s.LevelsPerAisle[aisle]
	if n < 0 {
		return 0
	}
	return n
}

// SlotCount returns the number of addressable storage slots in the shape,
// before missing-location rules are applied.
func (s Shape) SlotCount() int {
	if s.Aisles <= 0 || s.ModulesPerAisle <= 0 || s.LocationsPerModule <= 0 || s.StorageDepth <= 0 {
		return 0
	}
	total := 0
	for a := 0; a < s.Aisles; a++ {
		total += s.Levels(a) * s.ModulesPerAisle * s.StorageDepth * s.LocationsPerModule * NumSides
	}
	return total
}

// Location identifies one storage slot in the rack grid.
type Location struct {
	Aisle    int
	Level    int
	Module   int
	Depth    int
	Position int
}
