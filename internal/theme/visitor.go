package theme

// Component is a themeable element of the window. The set of variants is
// closed: *Label, *Button, *Input and *Container.
type Component interface {
	Accept(v Visitor)
	component()
}

// Visitor receives each Component variant.
type Visitor interface {
	VisitLabel(l *Label)
	VisitButton(b *Button)
	VisitInput(i *Input)
	VisitContainer(c *Container)
}

// Label is static text.
type Label struct {
	Text string
	Link bool // Rendered with the palette link color.
	FG   string
	BG   string
}

// ButtonRole selects an accent for a button.
type ButtonRole int

const (
	ButtonPlain ButtonRole = iota
	ButtonAdd
	ButtonDelete
)

// Button is a clickable action.
type Button struct {
	Text string
	Role ButtonRole
	FG   string
	BG   string
}

// Input is an editable field.
type Input struct {
	Value string
	FG    string
	BG    string
}

// Container groups components.
type Container struct {
	Name     string
	Ribbon   bool // Ribbon containers use the ribbon color.
	BG       string
	Children []Component
}

func (l *Label) Accept(v Visitor)     { v.VisitLabel(l) }
func (b *Button) Accept(v Visitor)    { v.VisitButton(b) }
func (i *Input) Accept(v Visitor)     { v.VisitInput(i) }
func (c *Container) Accept(v Visitor) { v.VisitContainer(c) }

func (*Label) component()     {}
func (*Button) component()    {}
func (*Input) component()     {}
func (*Container) component() {}

// painter assigns palette colors to every component it visits.
type painter struct {
	p Palette
}

func (pt painter) VisitLabel(l *Label) {
	l.BG = pt.p.Background
	l.FG = pt.p.Foreground
	if l.Link {
		l.FG = pt.p.Link
	}
}

func (pt painter) VisitButton(b *Button) {
	b.BG = pt.p.Button
	switch b.Role {
	case ButtonAdd:
		b.FG = pt.p.AddText
	case ButtonDelete:
		b.FG = pt.p.DeleteText
	default:
		b.FG = pt.p.ButtonText
	}
}

func (pt painter) VisitInput(i *Input) {
	i.BG = pt.p.Entry
	i.FG = pt.p.Foreground
}

func (pt painter) VisitContainer(c *Container) {
	c.BG = pt.p.Background
	if c.Ribbon {
		c.BG = pt.p.Ribbon
	}
	for _, child := range c.Children {
		child.Accept(pt)
	}
}

// Apply paints root and everything below it with p.
func Apply(root Component, p Palette) {
	if root == nil {
		return
	}
	root.Accept(painter{p: p})
}

// Walk calls fn for root and every descendant, parents first.
func Walk(root Component, fn func(Component)) {
	if root == nil {
		return
	}
	fn(root)
	if c, ok := root.(*Container); ok {
		for _, child := range c.Children {
			Walk(child, fn)
		}
	}
}
