package graph

// =============================================================================
// Layout - Diagram Geometry
// =============================================================================

// Layout is the serialization format of a computed diagram.
// Used for API responses, storage, caching, and cross-tool compatibility.
type Layout struct {
	ProcessID string `json:"process_id,omitempty" bson:"process_id,omitempty"`

	// Extent of every shape, label and waypoint.
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Shapes []Shape `json:"shapes" bson:"shapes"`
	Edges  []Edge  `json:"edges" bson:"edges"`
}

// IsEmpty reports whether the layout has nothing to draw.
func (l *Layout) IsEmpty() bool { return l.Width == 0 && l.Height == 0 }

// Shape returns the shape with the given id in the given scope.
func (l *Layout) Shape(parent, id string) (Shape, bool) {
	for _, s := range l.Shapes {
		if s.ID == id && s.Parent == parent {
			return s, true
		}
	}
	return Shape{}, false
}

// Bounds is an axis-aligned box.
type Bounds struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Point is an edge waypoint.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// =============================================================================
// Shape - Placed Flow Element
// =============================================================================

// Shape is a placed flow element.
type Shape struct {
	ID          string  `json:"id" bson:"id"`
	Kind        string  `json:"kind" bson:"kind"`                           // BPMN local name, e.g. "userTask"
	Parent      string  `json:"parent,omitempty" bson:"parent,omitempty"`   // Enclosing sub-process
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	Layer       int     `json:"layer" bson:"layer"`
	Position    int     `json:"position" bson:"position"`
	Expanded    bool    `json:"expanded,omitempty" bson:"expanded,omitempty"`
	Label       string  `json:"label,omitempty" bson:"label,omitempty"`
	LabelBounds *Bounds `json:"label_bounds,omitempty" bson:"label_bounds,omitempty"` // Outside labels only
}

// =============================================================================
// Edge - Routed Sequence Flow
// =============================================================================

// Edge is a routed sequence flow.
type Edge struct {
	ID          string  `json:"id" bson:"id"`
	Source      string  `json:"source" bson:"source"`
	Target      string  `json:"target" bson:"target"`
	Parent      string  `json:"parent,omitempty" bson:"parent,omitempty"`
	Waypoints   []Point `json:"waypoints" bson:"waypoints"`
	SourcePort  string  `json:"source_port,omitempty" bson:"source_port,omitempty"`
	TargetPort  string  `json:"target_port,omitempty" bson:"target_port,omitempty"`
	BackEdge    bool    `json:"back_edge,omitempty" bson:"back_edge,omitempty"`
	Label       string  `json:"label,omitempty" bson:"label,omitempty"`
	LabelBounds *Bounds `json:"label_bounds,omitempty" bson:"label_bounds,omitempty"`
}
