package plugboard

// Point is a position on the panel.
type Point struct {
	X, Y float64
}

// Segment is a wire from a slot to its anchor.
type Segment struct {
	A, B Point
}

// Overlap decides whether two wires visibly cross. Boards take it as a
// parameter so hosts with real colliders can supply their own.
type Overlap func(a, b Segment) bool

// SegmentsCross is the default Overlap: true when the segments cross at a
// single interior point. Touching ends and collinear runs do not count.
func SegmentsCross(a, b Segment) bool {
	d1 := orient(b.A, b.B, a.A)
	d2 := orient(b.A, b.B, a.B)
	d3 := orient(a.A, a.B, b.A)
	d4 := orient(a.A, a.B, b.B)
	return d1*d2 < 0 && d3*d4 < 0
}

// orient is the z of (q-p) x (r-p): positive when r lies left of p->q.
func orient(p, q, r Point) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}
