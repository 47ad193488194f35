package geo

// Point is a (latitude, longitude) pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Contains runs a ray-casting parity test for p against the polygon formed
// by poly. The polygon is implicitly closed: the edge from the last vertex
// back to the first is included. Latitude serves as the test's x axis and
// longitude as y, applied uniformly, so the parity result is unaffected.
// Polygons with fewer than 3 vertices never contain any point.
func Contains(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Lng > p.Lng) != (pj.Lng > p.Lng) {
			cross := (pj.Lat-pi.Lat)*(p.Lng-pi.Lng)/(pj.Lng-pi.Lng) + pi.Lat
			if p.Lat < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
