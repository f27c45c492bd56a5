package mock

import "github.com/fwojciec/urlx"

var _ urlx.StepExtractor = (*StepExtractor)(nil)

// StepExtractor is a mock implementation of urlx.StepExtractor.
type StepExtractor struct {
	ExtractFn func(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error)
}

func (e *StepExtractor) Extract(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error) {
	return e.ExtractFn(expr, in, params)
}
