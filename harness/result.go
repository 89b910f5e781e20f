// Package harness runs the insert+lookup sweep against a subject.
package harness

// Point is the measurement for one sweep size.
type Point struct {
	Elements  int     `json:"elements"`
	Trials    int     `json:"trials"`
	ElapsedNs int64   `json:"elapsed_ns"`
	AvgMicros float64 `json:"avgtime"`
}

// Result holds every point measured for one subject.
type Result struct {
	Subject string  `json:"subject"`
	Order   string  `json:"order"`
	Fresh   bool    `json:"fresh"`
	Points  []Point `json:"points"`
}
