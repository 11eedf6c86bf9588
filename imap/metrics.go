package imap

import (
	"io"

	"github.com/go-kit/kit/metrics"
)

// Structs

type metricsReader struct {
	reader       ResponseReader
	responses    metrics.Counter
	literals     metrics.Counter
	failures     metrics.Counter
	literalBytes metrics.Histogram
}

// Functions

// NewMetricsReader counts read responses, literal
// interruptions and failures of the wrapped reader
// and observes the announced size of each literal.
func NewMetricsReader(r ResponseReader, responses metrics.Counter, literals metrics.Counter, failures metrics.Counter, literalBytes metrics.Histogram) ResponseReader {

	return &metricsReader{
		reader:       r,
		responses:    responses,
		literals:     literals,
		failures:     failures,
		literalBytes: literalBytes,
	}
}

func (m *metricsReader) ReadResponse() (*Response, error) {

	resp, err := m.reader.ReadResponse()
	if err != nil {

		if err != io.EOF {
			m.failures.Add(1)
		}

		return nil, err
	}

	m.responses.Add(1)
	m.observeLiteral(resp)

	return resp, nil
}

func (m *metricsReader) Resume(resp *Response) (bool, error) {

	more, err := m.reader.Resume(resp)
	if err != nil {
		m.failures.Add(1)
		return more, err
	}

	m.observeLiteral(resp)

	return more, nil
}

// observeLiteral records the literal an incomplete
// response ends with.
func (m *metricsReader) observeLiteral(resp *Response) {

	if lit := resp.PendingLiteral(); lit != nil {
		m.literals.Add(1)
		m.literalBytes.Observe(float64(lit.Size()))
	}
}

// trailingLiteral descends into the last element of
// nested lists and returns the literal found there.
func trailingLiteral(l List) *Literal {

	for len(l) > 0 {

		switch t := l[len(l)-1].(type) {
		case *Literal:
			return t
		case List:
			l = t
		default:
			return nil
		}
	}

	return nil
}
