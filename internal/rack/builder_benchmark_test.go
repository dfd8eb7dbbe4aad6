package rack

import (
	"testing"

	"rackview/internal/layout"
	"rackview/internal/material"
)

func benchShape() layout.Shape {
	levels := make([]int, 12)
	for i := range levels {
		levels[i] = 10
	}
	return layout.Shape{
		Aisles:             12,
		ModulesPerAisle:    40,
		LocationsPerModule: 3,
		StorageDepth:       2,
		LevelsPerAisle:     levels,
	}
}

func BenchmarkBuildInstanced_FullSweep(b *testing.B) {
	builder := NewBuilder(ModeInstanced, layout.DefaultGeometry(2), material.NewCache(), nil)
	shape := benchShape()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Build(shape, nil, nil, Options{ForceIncremental: true})
	}
}

func BenchmarkBuildRegular_Incremental(b *testing.B) {
	builder := NewBuilder(ModeRegular, layout.DefaultGeometry(2), material.NewCache(), nil)
	shape := benchShape()
	builder.Build(shape, nil, nil, Options{})
	types := []layout.Rule{
		{Aisle: layout.Exact(0), Level: layout.Exact(0), Module: layout.Exact(0), Type: "Special"},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternate between two rule sets so every pass diffs one module.
		if i%2 == 0 {
			builder.Build(shape, nil, types, Options{})
		} else {
			builder.Build(shape, nil, nil, Options{})
		}
	}
}

func BenchmarkModuleSignature(b *testing.B) {
	shape := benchShape()
	types := []layout.Rule{
		{Level: layout.Exact(0), Type: "Pick"},
		{Module: layout.OneOf(1, 3, 5), Type: "Buffer"},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = moduleSignature(shape, nil, types, 0, 0, 0, 0, false)
	}
}
