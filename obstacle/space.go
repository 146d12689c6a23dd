package obstacle

import (
	"sync"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/common"
)

// ID identifies an obstacle added to a Space.
type ID int

// Space is a Query backed by a Chipmunk space holding only static shapes.
// Obstacles may be added and removed between ticks.
type Space struct {
	mu     sync.Mutex
	space  *cp.Space
	shapes map[ID]*cp.Shape
	nextID ID
}

var _ Query = (*Space)(nil)

func NewSpace() *Space {
	return &Space{
		space:  cp.NewSpace(),
		shapes: make(map[ID]*cp.Shape),
		nextID: 1,
	}
}

// AddRect adds an axis-aligned box.
func (s *Space) AddRect(bb cp.BB) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(cp.NewBox2(s.space.StaticBody, bb, 0))
}

// AddBox adds an axis-aligned box of size w x h centered at center.
func (s *Space) AddBox(center cp.Vector, w, h float64) ID {
	return s.AddRect(cp.BB{
		L: center.X - w/2,
		B: center.Y - h/2,
		R: center.X + w/2,
		T: center.Y + h/2,
	})
}

func (s *Space) AddCircle(center cp.Vector, radius float64) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(cp.NewCircle(s.space.StaticBody, radius, center))
}

func (s *Space) add(shape *cp.Shape) ID {
	s.space.AddShape(shape)
	id := s.nextID
	s.nextID++
	s.shapes[id] = shape
	return id
}

// Remove drops an obstacle. It reports false for unknown ids.
func (s *Space) Remove(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	shape, ok := s.shapes[id]
	if !ok {
		return false
	}
	s.space.RemoveShape(shape)
	delete(s.shapes, id)
	return true
}

func (s *Space) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shapes)
}

func (s *Space) IsObstructed(p cp.Vector, radius float64) bool {
	if radius < 0 {
		radius = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	info := s.space.PointQueryNearest(p, radius, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}

func (s *Space) FirstAlongRay(origin, dir cp.Vector, maxDist float64) (Hit, bool) {
	l := dir.Length()
	if l < common.Epsilon || maxDist <= 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Mult(maxDist / l))
	s.mu.Lock()
	info := s.space.SegmentQueryFirst(origin, end, 0, cp.SHAPE_FILTER_ALL)
	s.mu.Unlock()
	if info.Shape == nil {
		return Hit{}, false
	}
	return Hit{
		Point:    info.Point,
		Normal:   info.Normal,
		Distance: info.Alpha * maxDist,
	}, true
}

func (s *Space) SegmentObstructed(a, b cp.Vector, radius float64) bool {
	if radius < 0 {
		radius = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	info := s.space.SegmentQueryFirst(a, b, radius, cp.SHAPE_FILTER_ALL)
	return info.Shape != nil
}
