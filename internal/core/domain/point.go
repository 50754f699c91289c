package domain

// Point is one model plotted on a pair of metrics.
type Point struct {
	DesignID string
	ModelID  string
	X        float64
	Y        float64
}
