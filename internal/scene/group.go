package scene

// Group is a named scene-graph node. A build returns one root group that
// the host attaches under its own scene; the core never holds a global
// scene singleton.
type Group struct {
	Name    string
	Groups  []*Group
	Objects []*Object
}

// NewGroup creates an empty named group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// AddGroup appends a child group.
func (g *Group) AddGroup(child *Group) {
	g.Groups = append(g.Groups, child)
}

// AddObject appends a renderable object.
func (g *Group) AddObject(o *Object) {
	g.Objects = append(g.Objects, o)
}

// Clear detaches all children without disposing them.
func (g *Group) Clear() {
	g.Groups = g.Groups[:0]
	g.Objects = g.Objects[:0]
}

// ClearAndDispose detaches all children and releases their resources.
func (g *Group) ClearAndDispose() {
	for _, o := range g.Objects {
		o.Dispose()
	}
	for _, c := range g.Groups {
		c.ClearAndDispose()
	}
	g.Clear()
}

// Walk calls fn for every object in the subtree, depth first.
func (g *Group) Walk(fn func(*Object)) {
	for _, o := range g.Objects {
		fn(o)
	}
	for _, c := range g.Groups {
		c.Walk(fn)
	}
}

// CollectObjects appends every object in the subtree to dst and returns
// the extended slice. dst may be nil or a reused scratch buffer.
func (g *Group) CollectObjects(dst []*Object) []*Object {
	dst = append(dst, g.Objects...)
	for _, c := range g.Groups {
		dst = c.CollectObjects(dst)
	}
	return dst
}

// ObjectCount returns the number of objects in the subtree.
func (g *Group) ObjectCount() int {
	n := len(g.Objects)
	for _, c := range g.Groups {
		n += c.ObjectCount()
	}
	return n
}
