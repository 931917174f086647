package effect

import "errors"

// fakeActor 记录对可视元素的调用
type fakeActor struct {
	spec      RectSpec
	x, y      float64
	rotation  float64
	opacity   uint8
	destroyed int
}

func (a *fakeActor) SetPosition(x, y float64)         { a.x, a.y = x, y }
func (a *fakeActor) SetRotationAngle(degrees float64) { a.rotation = degrees }
func (a *fakeActor) SetOpacity(opacity uint8)         { a.opacity = opacity }
func (a *fakeActor) Destroy()                         { a.destroyed++ }

type fakeContainer struct {
	bounds    Rect
	actors    []*fakeActor
	destroyed int
}

func (c *fakeContainer) AddRect(spec RectSpec) Actor {
	a := &fakeActor{spec: spec, x: spec.X, y: spec.Y, rotation: spec.Rotation, opacity: 255}
	c.actors = append(c.actors, a)
	return a
}

func (c *fakeContainer) Destroy() { c.destroyed++ }

type fakeShell struct {
	monitor    Rect
	failAdd    bool
	containers []*fakeContainer
	onTop      map[*fakeContainer]bool
}

var errCompositor = errors.New("compositor rejected overlay")

func newFakeShell(width, height float64) *fakeShell {
	return &fakeShell{
		monitor: Rect{Width: width, Height: height},
		onTop:   make(map[*fakeContainer]bool),
	}
}

func (s *fakeShell) PrimaryMonitor() Rect { return s.monitor }

func (s *fakeShell) AddOverlay(bounds Rect) (Container, error) {
	if s.failAdd {
		return nil, errCompositor
	}
	c := &fakeContainer{bounds: bounds}
	s.containers = append(s.containers, c)
	s.onTop[c] = true
	return c, nil
}

func (s *fakeShell) RemoveOverlay(c Container) {
	delete(s.onTop, c.(*fakeContainer))
}

// liveActors 统计所有容器中未销毁的可视元素
func (s *fakeShell) liveActors() int {
	n := 0
	for _, c := range s.containers {
		for _, a := range c.actors {
			if a.destroyed == 0 {
				n++
			}
		}
	}
	return n
}
