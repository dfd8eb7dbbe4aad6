package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/profiling"
	"rackview/internal/scene"
)

// RackRenderer draws the rack subtree produced by the builder. Instance
// buffers are uploaded lazily on first sight and freed through the
// buffer's release hook when the core disposes a superseded bucket.
type RackRenderer struct {
	instancedShader *Shader
	singleShader    *Shader
	box             *BoxMesh
	meshes          map[*scene.InstanceBuffer]*InstancedMesh
}

// NewRackRenderer creates an uninitialized renderer; call Init with a
// current GL context.
func NewRackRenderer() *RackRenderer {
	return &RackRenderer{meshes: make(map[*scene.InstanceBuffer]*InstancedMesh)}
}

// Init compiles shaders and uploads the shared unit cube.
func (r *RackRenderer) Init() error {
	var err error
	r.instancedShader, err = NewShader(rackVertInstanced, rackFrag)
	if err != nil {
		return err
	}
	r.singleShader, err = NewShader(rackVertSingle, rackFrag)
	if err != nil {
		return err
	}
	r.box = NewBoxMesh()

	// Translucent placeholder buckets carry opacity below 1.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

// Render draws every visible object under root.
func (r *RackRenderer) Render(cam *OrbitCamera, root *scene.Group) {
	if root == nil {
		return
	}
	defer profiling.Track("graphics.Render")()

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	camPos := cam.Position()
	light := mgl32.Vec3{0.3, 1.0, 0.3}.Normalize()

	// Instanced buckets first, then single primitives, to minimize
	// program switches.
	r.instancedShader.Use()
	r.instancedShader.SetMatrix4("proj", &proj[0])
	r.instancedShader.SetMatrix4("view", &view[0])
	r.instancedShader.SetVector3("lightDir", light[0], light[1], light[2])
	r.instancedShader.SetVector3("camPos", camPos[0], camPos[1], camPos[2])
	root.Walk(func(o *scene.Object) {
		if !o.Visible || o.Instances == nil {
			return
		}
		r.setSurface(r.instancedShader, o)
		r.ensureMesh(o).Draw()
	})

	r.singleShader.Use()
	r.singleShader.SetMatrix4("proj", &proj[0])
	r.singleShader.SetMatrix4("view", &view[0])
	r.singleShader.SetVector3("lightDir", light[0], light[1], light[2])
	r.singleShader.SetVector3("camPos", camPos[0], camPos[1], camPos[2])
	root.Walk(func(o *scene.Object) {
		if !o.Visible || o.Instances != nil {
			return
		}
		model := mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
			Mul4(mgl32.Scale3D(o.Size[0], o.Size[1], o.Size[2]))
		r.singleShader.SetMatrix4("model", &model[0])
		r.setSurface(r.singleShader, o)
		r.box.Draw()
	})
	gl.BindVertexArray(0)
}

func (r *RackRenderer) setSurface(s *Shader, o *scene.Object) {
	c := mgl32.Vec3{0.5, 0.5, 0.5}
	e := mgl32.Vec3{}
	if o.Material != nil {
		c = o.Material.Color
		e = o.Material.Emissive
	}
	s.SetVector3("baseColor", c[0], c[1], c[2])
	s.SetVector3("emissive", e[0], e[1], e[2])
	s.SetFloat("roughness", o.Appearance.Roughness)
	s.SetFloat("metalness", o.Appearance.Metalness)
	s.SetFloat("opacity", o.Opacity)
}

// ensureMesh uploads the instance buffer on first use, baking the slot
// size into each instance's model matrix.
func (r *RackRenderer) ensureMesh(o *scene.Object) *InstancedMesh {
	buf := o.Instances
	if m, ok := r.meshes[buf]; ok {
		return m
	}
	scale := mgl32.Scale3D(o.Size[0], o.Size[1], o.Size[2])
	models := make([]mgl32.Mat4, len(buf.Transforms))
	for i, t := range buf.Transforms {
		models[i] = t.Mul4(scale)
	}
	m := NewInstancedMesh(models)
	r.meshes[buf] = m
	buf.OnRelease = func() {
		m.Delete()
		delete(r.meshes, buf)
	}
	return m
}

// Dispose frees every GPU resource the renderer owns.
func (r *RackRenderer) Dispose() {
	for buf, m := range r.meshes {
		m.Delete()
		delete(r.meshes, buf)
	}
	if r.box != nil {
		r.box.Delete()
	}
	if r.instancedShader != nil {
		r.instancedShader.Delete()
	}
	if r.singleShader != nil {
		r.singleShader.Delete()
	}
}
