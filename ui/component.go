package ui

// Component is a node of the render tree. Render redraws the node's whole
// current state into the context's buffer every frame; it must not depend
// on what was drawn in earlier frames.
type Component[E comparable, S any] interface {
	Render(c *Context[E, S])
}

// Mounter is implemented by components that register listeners or start
// background work. Mount runs exactly once, before the first render.
type Mounter[E comparable, S any] interface {
	Mount(c *Context[E, S]) error
}

// Parent is implemented by components that own children. The tree walk
// mounts a parent before its children, in slice order.
type Parent[E comparable, S any] interface {
	Children() []Component[E, S]
}

// RenderFunc adapts a plain function to a Component.
type RenderFunc[E comparable, S any] func(c *Context[E, S])

func (f RenderFunc[E, S]) Render(c *Context[E, S]) { f(c) }

// Group renders its children in order. Later children draw over earlier
// ones.
type Group[E comparable, S any] struct {
	Items []Component[E, S]
}

// NewGroup returns a group of the non-nil children.
func NewGroup[E comparable, S any](children ...Component[E, S]) *Group[E, S] {
	g := &Group[E, S]{}
	for _, ch := range children {
		g.Add(ch)
	}
	return g
}

// Add appends a child. It must be called before the tree is mounted.
func (g *Group[E, S]) Add(ch Component[E, S]) {
	if ch != nil {
		g.Items = append(g.Items, ch)
	}
}

func (g *Group[E, S]) Children() []Component[E, S] { return g.Items }

func (g *Group[E, S]) Render(c *Context[E, S]) {
	for _, ch := range g.Items {
		ch.Render(c)
	}
}

// Visible renders Child only while Show reports true.
type Visible[E comparable, S any] struct {
	Show  func(c *Context[E, S]) bool
	Child Component[E, S]
}

func (v *Visible[E, S]) Children() []Component[E, S] {
	return []Component[E, S]{v.Child}
}

func (v *Visible[E, S]) Render(c *Context[E, S]) {
	if v.Show == nil || v.Show(c) {
		v.Child.Render(c)
	}
}

func mountTree[E comparable, S any](c *Context[E, S], comp Component[E, S]) error {
	if m, ok := comp.(Mounter[E, S]); ok {
		if err := m.Mount(c); err != nil {
			return err
		}
	}
	p, ok := comp.(Parent[E, S])
	if !ok {
		return nil
	}
	for _, ch := range p.Children() {
		if ch == nil {
			continue
		}
		if err := mountTree(c, ch); err != nil {
			return err
		}
	}
	return nil
}
