package game

// Kind tags an entity. Obstacles are bugs or errors, collectibles are
// framework icons.
type Kind string

const (
	KindBug   Kind = "bug"
	KindError Kind = "error"
	KindReact Kind = "react"
	KindNode  Kind = "node"
	KindMongo Kind = "mongo"
)

// Obstacle reports whether touching the kind ends the session.
func (k Kind) Obstacle() bool {
	return k == KindBug || k == KindError
}

// Entity is a spawned obstacle or collectible.
type Entity struct {
	ID   uint64  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind Kind    `json:"kind"`
}

// box is an axis-aligned bounding box given by its centre and size.
type box struct {
	cx, cy float64
	w, h   float64
}

func (b box) overlaps(o box) bool {
	if b.cx+b.w/2 <= o.cx-o.w/2 || o.cx+o.w/2 <= b.cx-b.w/2 {
		return false
	}
	if b.cy+b.h/2 <= o.cy-o.h/2 || o.cy+o.h/2 <= b.cy-b.h/2 {
		return false
	}
	return true
}
