package formula

// Snapshot is the JSON form of a formula. Only the fields of its kind are set.
type Snapshot struct {
	Kind  string   `json:"kind"`
	Value *int     `json:"value,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Mu    *float64 `json:"mu,omitempty"`
	Sigma *float64 `json:"sigma,omitempty"`
}

// Snapshot returns the JSON form of f.
func (f Formula) Snapshot() Snapshot {
	s := Snapshot{Kind: f.kind.String()}
	switch f.kind {
	case KindFixed:
		v := f.value
		s.Value = &v
	case KindUniform:
		lo, hi := f.min, f.max
		s.Min, s.Max = &lo, &hi
	case KindGaussian:
		mu, sigma := f.mu, f.sigma
		s.Mu, s.Sigma = &mu, &sigma
	}
	return s
}

// Params converts the snapshot back into formula parameters. Missing fields
// are treated as zero.
func (s Snapshot) Params() (Params, error) {
	kind, err := ParseKind(s.Kind)
	if err != nil {
		return Params{}, err
	}
	p := Params{Kind: kind}
	if s.Value != nil {
		p.Value = *s.Value
	}
	if s.Min != nil {
		p.Min = *s.Min
	}
	if s.Max != nil {
		p.Max = *s.Max
	}
	if s.Mu != nil {
		p.Mu = *s.Mu
	}
	if s.Sigma != nil {
		p.Sigma = *s.Sigma
	}
	return p, nil
}
