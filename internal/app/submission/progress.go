package submission

// ProgressFunc receives a stage label and a percentage. Percentages never
// decrease within one save and the last report of a successful save is 100.
type ProgressFunc func(stage string, percent int)

type progress struct {
	fn   ProgressFunc
	last int
}

func newProgress(fn ProgressFunc) *progress {
	return &progress{fn: fn}
}

func (p *progress) report(stage string, percent int) {
	if p == nil || p.fn == nil {
		return
	}
	if percent < p.last {
		percent = p.last
	}
	if percent > 100 {
		percent = 100
	}
	p.last = percent
	p.fn(stage, percent)
}
