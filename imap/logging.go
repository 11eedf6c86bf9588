package imap

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Structs

type loggingReader struct {
	logger log.Logger
	reader ResponseReader
}

// Functions

// NewLoggingReader wraps a provided existing
// response reader with the provided logger.
func NewLoggingReader(r ResponseReader, logger log.Logger) ResponseReader {
	return &loggingReader{logger, r}
}

// ReadResponse wraps the reader's ReadResponse
// method with added logging capabilities.
func (l *loggingReader) ReadResponse() (*Response, error) {

	resp, err := l.reader.ReadResponse()
	if err != nil {

		logger := log.With(l.logger, "method", "ReadResponse")

		if IsIO(err) || IsSyntax(err) {
			level.Info(logger).Log("msg", "failed to read response", "err", err)
		} else {
			level.Debug(logger).Log("msg", "no further response", "err", err)
		}

		return nil, err
	}

	level.Debug(l.logger).Log(
		"method", "ReadResponse",
		"tag", resp.Tag,
		"continuation", resp.ContinuationRequest,
		"completed", resp.Completed(),
		"elements", len(resp.List),
	)

	return resp, nil
}

// Resume wraps the reader's Resume method
// with added logging capabilities.
func (l *loggingReader) Resume(resp *Response) (bool, error) {

	more, err := l.reader.Resume(resp)

	logger := log.With(l.logger,
		"method", "Resume",
		"tag", resp.Tag,
	)

	if err != nil {
		level.Info(logger).Log("msg", "failed to resume response", "err", err)
	} else {
		level.Debug(logger).Log("completed", resp.Completed(), "elements", len(resp.List))
	}

	return more, err
}
