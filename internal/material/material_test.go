package material

import "testing"

func TestGetIsDeterministic(t *testing.T) {
	a := NewCache()
	b := NewCache()
	for _, name := range []string{"Storage", "Special", "SomethingUnknown", "Zone-42"} {
		ma := a.Get(name)
		mb := b.Get(name)
		if ma.Color != mb.Color || ma.Metalness != mb.Metalness || ma.Roughness != mb.Roughness {
			t.Fatalf("%s: descriptors differ across caches: %+v vs %+v", name, ma, mb)
		}
	}
}

func TestGetReturnsSameInstance(t *testing.T) {
	c := NewCache()
	first := c.Get("Conveyor")
	second := c.Get("Conveyor")
	if first != second {
		t.Fatal("repeated Get must return the cached descriptor instance")
	}
}

func TestUnknownTypesGetDistinctColors(t *testing.T) {
	c := NewCache()
	a := c.Get("FooZone")
	b := c.Get("BarZone")
	if a.Color == b.Color {
		t.Fatalf("distinct unknown types hashed to the same color %v", a.Color)
	}
}

func TestPaletteTypesPreseeded(t *testing.T) {
	c := NewCache()
	before := c.Len()
	m := c.Get("Storage")
	if m.Name != "Storage" {
		t.Fatalf("name = %q, want Storage", m.Name)
	}
	if c.Len() != before {
		t.Fatal("palette lookup must not grow the cache")
	}
}

func TestCacheBoundedByNamesSeen(t *testing.T) {
	c := NewCache()
	base := c.Len()
	c.Get("X")
	c.Get("X")
	c.Get("Y")
	if got := c.Len(); got != base+2 {
		t.Fatalf("cache size = %d, want %d", got, base+2)
	}
}
