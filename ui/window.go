package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/evdispatch/dom"
)

// Box is an element with geometry, as drawn by a Surface.
type Box struct {
	Element *dom.Element
	Rect    dom.DOMRect
	Depth   int
}

// Boxes lists the elements of doc that have geometry, in paint order.
// Shadow trees are drawn after their host's children, as Document.HitTest
// sees them.
func Boxes(doc *dom.Document) []Box {
	var boxes []Box
	doc.WalkPaintOrder(func(n *dom.Node, depth int) {
		if n.NodeType() != dom.ElementNode {
			return
		}
		el := (*dom.Element)(n)
		if g := el.Geometry(); g != nil {
			boxes = append(boxes, Box{Element: el, Rect: *g, Depth: depth})
		}
	})
	return boxes
}

// Surface is a widget that draws a document's element boxes and forwards
// pointer input to a Router.
type Surface struct {
	widget.BaseWidget

	doc    *dom.Document
	router *Router
}

var (
	_ desktop.Mouseable = (*Surface)(nil)
	_ desktop.Hoverable = (*Surface)(nil)
	_ fyne.Scrollable   = (*Surface)(nil)
)

// NewSurface creates a surface for doc routing input through router.
func NewSurface(doc *dom.Document, router *Router) *Surface {
	s := &Surface{doc: doc, router: router}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{}
	for _, b := range Boxes(s.doc) {
		rect := canvas.NewRectangle(boxFill(b.Depth))
		rect.StrokeColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
		rect.StrokeWidth = 1
		rect.Move(fyne.NewPos(float32(b.Rect.X), float32(b.Rect.Y)))
		rect.Resize(fyne.NewSize(float32(b.Rect.Width), float32(b.Rect.Height)))

		label := canvas.NewText(boxLabel(b.Element), color.Black)
		label.TextSize = 11
		label.Move(fyne.NewPos(float32(b.Rect.X)+2, float32(b.Rect.Y)+1))

		objects = append(objects, rect, label)
	}
	return widget.NewSimpleRenderer(container.NewWithoutLayout(objects...))
}

// MinSize covers every box.
func (s *Surface) MinSize() fyne.Size {
	var w, h float32
	for _, b := range Boxes(s.doc) {
		w = max(w, float32(b.Rect.Right()))
		h = max(h, float32(b.Rect.Bottom()))
	}
	return fyne.NewSize(w, h)
}

// MouseIn implements desktop.Hoverable.
func (s *Surface) MouseIn(ev *desktop.MouseEvent) { s.router.MouseIn(ev) }

// MouseMoved implements desktop.Hoverable.
func (s *Surface) MouseMoved(ev *desktop.MouseEvent) { s.router.MouseMoved(ev) }

// MouseOut implements desktop.Hoverable.
func (s *Surface) MouseOut() { s.router.MouseOut() }

// MouseDown implements desktop.Mouseable.
func (s *Surface) MouseDown(ev *desktop.MouseEvent) { s.router.MouseDown(ev) }

// MouseUp implements desktop.Mouseable.
func (s *Surface) MouseUp(ev *desktop.MouseEvent) { s.router.MouseUp(ev) }

// Scrolled implements fyne.Scrollable.
func (s *Surface) Scrolled(ev *fyne.ScrollEvent) { s.router.Scrolled(ev) }

func boxLabel(el *dom.Element) string {
	if id := el.Id(); id != "" {
		return el.LocalName() + "#" + id
	}
	return el.LocalName()
}

func boxFill(depth int) color.Color {
	shade := uint8(0xf4 - min(depth, 8)*0x10)
	return color.NRGBA{R: shade, G: shade, B: 0xff, A: 0xff}
}

// Window shows a document in a fyne window.
type Window struct {
	app     fyne.App
	window  fyne.Window
	surface *Surface
	router  *Router
}

// NewWindow creates a window titled title showing doc.
func NewWindow(a fyne.App, title string, doc *dom.Document, router *Router) *Window {
	w := a.NewWindow(title)
	surface := NewSurface(doc, router)
	w.SetContent(container.NewScroll(surface))

	size := surface.MinSize()
	w.Resize(fyne.NewSize(max(size.Width, 640), max(size.Height, 480)))

	return &Window{
		app:     a,
		window:  w,
		surface: surface,
		router:  router,
	}
}

// Router returns the router receiving the window's input.
func (w *Window) Router() *Router {
	return w.router
}

// ShowAndRun shows the window and runs the application loop.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}
