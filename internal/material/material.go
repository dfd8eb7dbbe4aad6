package material

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// Material is a reusable shaded-surface descriptor for one semantic
// location type. Descriptors are shared between every object of that
// type and never mutated after creation.
type Material struct {
	Name      string
	Color     mgl32.Vec3
	Metalness float32
	Roughness float32
	Emissive  mgl32.Vec3
}

// Cache maps location-type names to material descriptors. The same name
// always yields the same descriptor instance, so rebuilds never flicker.
// Entries live for the process lifetime; cardinality is bounded by the
// number of distinct type names ever seen.
type Cache struct {
	materials map[string]*Material
}

// NewCache creates a cache pre-seeded with the fixed palette for the
// standard location types.
func NewCache() *Cache {
	c := &Cache{materials: make(map[string]*Material, len(palette)+8)}
	for name, p := range palette {
		c.materials[name] = &Material{
			Name:      name,
			Color:     rgb(p.color),
			Metalness: p.metalness,
			Roughness: p.roughness,
			Emissive:  p.emissive,
		}
	}
	return c
}

// Get returns the descriptor for the given type name, creating a
// deterministic procedural one for names outside the fixed palette.
func (c *Cache) Get(typeName string) *Material {
	if m, ok := c.materials[typeName]; ok {
		return m
	}
	m := derive(typeName)
	c.materials[typeName] = m
	return m
}

// Len returns the number of cached descriptors.
func (c *Cache) Len() int {
	return len(c.materials)
}

type paletteEntry struct {
	color     color.RGBA
	metalness float32
	roughness float32
	emissive  mgl32.Vec3
}

// Fixed palette for the known location types.
var palette = map[string]paletteEntry{
	"Storage": {color: colornames.Steelblue, metalness: 0.55, roughness: 0.45},
	"Special": {color: colornames.Darkorange, metalness: 0.4, roughness: 0.5},
	"Pick":    {color: colornames.Mediumseagreen, metalness: 0.35, roughness: 0.55},
	"Buffer":  {color: colornames.Goldenrod, metalness: 0.4, roughness: 0.5},
	"Charge":  {color: colornames.Orchid, metalness: 0.3, roughness: 0.5, emissive: mgl32.Vec3{0.08, 0.02, 0.08}},
	"Empty":   {color: colornames.Slategray, metalness: 0.2, roughness: 0.8},
	"Missing": {color: colornames.Dimgray, metalness: 0.1, roughness: 0.9},
	"Frame":   {color: colornames.Lightsteelblue, metalness: 0.75, roughness: 0.3},
}

// derive builds a stable, visually distinct material for an unknown type
// name by hashing the name into a hue.
func derive(typeName string) *Material {
	h := fnv.New64a()
	h.Write([]byte(typeName))
	sum := h.Sum64()

	hue := float32(sum%360) / 360
	sat := 0.45 + float32((sum>>16)%40)/100 // 0.45..0.84
	val := 0.55 + float32((sum>>32)%30)/100 // 0.55..0.84

	return &Material{
		Name:      typeName,
		Color:     hsvToRGB(hue, sat, val),
		Metalness: 0.4,
		Roughness: 0.5,
	}
}

func rgb(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// hsvToRGB converts h,s,v in [0,1] to an RGB vector.
func hsvToRGB(h, s, v float32) mgl32.Vec3 {
	if s == 0 {
		return mgl32.Vec3{v, v, v}
	}
	hf := float64(h) * 6
	i := int(math.Floor(hf))
	f := float32(hf - float64(i))
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i % 6 {
	case 0:
		return mgl32.Vec3{v, t, p}
	case 1:
		return mgl32.Vec3{q, v, p}
	case 2:
		return mgl32.Vec3{p, v, t}
	case 3:
		return mgl32.Vec3{p, q, v}
	case 4:
		return mgl32.Vec3{t, p, v}
	default:
		return mgl32.Vec3{v, p, q}
	}
}
