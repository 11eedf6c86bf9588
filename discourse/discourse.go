package discourse

import (
	"strings"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Constants

// DefaultLines is used when a capacity of zero or
// less is requested.
const DefaultLines = 64

// maxLineLength bounds a single stored line. Longer
// lines are split.
const maxLineLength = 1024

// Structs

// Logger records received bytes and sent commands
// line by line and keeps the last lines of that
// discourse. It implements imap.Recorder.
type Logger struct {
	lock    *sync.Mutex
	logger  log.Logger
	lines   []string
	next    int
	full    bool
	partial []byte
}

// Functions

// NewLogger returns a discourse logger keeping at
// most capacity lines and dumping them to logger.
func NewLogger(logger log.Logger, capacity int) *Logger {

	if capacity <= 0 {
		capacity = DefaultLines
	}

	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Logger{
		lock:   &sync.Mutex{},
		logger: logger,
		lines:  make([]string, capacity),
	}
}

// add places a line in the ring buffer, overwriting
// the oldest one if the buffer is full. Lock has to
// be held.
func (d *Logger) add(line string) {

	d.lines[d.next] = line
	d.next++

	if d.next == len(d.lines) {
		d.next = 0
		d.full = true
	}
}

// flushReceived stores the partially received line,
// if there is one. Lock has to be held.
func (d *Logger) flushReceived() {

	if len(d.partial) == 0 {
		return
	}

	d.add("S: " + strings.TrimRight(string(d.partial), "\r"))
	d.partial = d.partial[:0]
}

// Record adds a byte received from the server.
func (d *Logger) Record(b byte) {

	d.lock.Lock()
	defer d.lock.Unlock()

	if b == '\n' {
		d.flushReceived()
		return
	}

	d.partial = append(d.partial, b)

	if len(d.partial) >= maxLineLength {
		d.flushReceived()
	}
}

// RecordSent adds a command line sent to the server.
func (d *Logger) RecordSent(command string) {

	d.lock.Lock()
	defer d.lock.Unlock()

	d.flushReceived()
	d.add("C: " + strings.TrimRight(command, "\r\n"))
}

// Lines returns the stored lines from oldest to
// newest followed by a partially received line.
func (d *Logger) Lines() []string {

	d.lock.Lock()
	defer d.lock.Unlock()

	var lines []string

	if d.full {
		lines = append(lines, d.lines[d.next:]...)
	}

	lines = append(lines, d.lines[:d.next]...)

	if len(d.partial) > 0 {
		lines = append(lines, "S: "+strings.TrimRight(string(d.partial), "\r"))
	}

	return lines
}

// DumpRecent writes the stored discourse to the
// logger. The buffer is left untouched.
func (d *Logger) DumpRecent() {

	lines := d.Lines()

	level.Info(d.logger).Log(
		"msg", "last network activities",
		"lines", len(lines),
	)

	for i, line := range lines {
		level.Info(d.logger).Log("n", i, "line", line)
	}
}
