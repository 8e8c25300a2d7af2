package network

// Connection is an undirected edge between two contacts. Strength and Trust
// are normalized to [0,1]; zero values are treated as unknown and replaced by
// neutral defaults when the graph is built.
type Connection struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Strength float64 `json:"strength,omitempty"`
	Trust    float64 `json:"trust,omitempty"`
}

const (
	// DefaultStrength and DefaultTrust substitute for missing edge weights.
	DefaultStrength = 0.5
	DefaultTrust    = 0.5
)

// Normalized returns a copy with weights clamped to [0,1] and zero values
// replaced by neutral defaults.
func (c *Connection) Normalized() *Connection {
	out := *c
	if out.Strength <= 0 {
		out.Strength = DefaultStrength
	}
	if out.Trust <= 0 {
		out.Trust = DefaultTrust
	}
	if out.Strength > 1 {
		out.Strength = 1
	}
	if out.Trust > 1 {
		out.Trust = 1
	}
	return &out
}
