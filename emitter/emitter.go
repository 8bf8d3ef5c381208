//Package emitter writes data points in the line protocol ~.<channel>@<v1>,<v2>,...,<vn>,
package emitter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gendata/signalGen"
)

//ErrInvalidChannel is returned for channel names the protocol cannot carry
var ErrInvalidChannel = errors.New("channel must be non empty and may not contain '@' or line breaks")

const (
	linePrefix     = "~."
	valueDelimiter = '@'
	valueSeparator = ','
)

var _ signalGen.Sink = (*Emitter)(nil)

//AppendLine appends the protocol line (without line break) for channel and values to dst
func AppendLine(dst []byte, channel string, values []float64) []byte {
	dst = append(dst, linePrefix...)
	dst = append(dst, channel...)
	dst = append(dst, valueDelimiter)
	for _, v := range values {
		dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
		dst = append(dst, valueSeparator)
	}
	return dst
}

//FormatLine returns the protocol line (without line break) for channel and values
func FormatLine(channel string, values []float64) string {
	return string(AppendLine(nil, channel, values))
}

//ValidChannel returns true if channel can be written without breaking the line format
func ValidChannel(channel string) bool {
	return channel != "" && !strings.ContainsAny(channel, "@\r\n")
}

//Emitter writes one line per data point to the underlying writer. It is meant to be used from a single goroutine
type Emitter struct {
	out       *bufio.Writer
	autoFlush bool
	delay     time.Duration
	sleep     func(time.Duration)
	lineBuf   []byte
	lines     int
	perChan   map[string]int
}

//NewEmitter creates an Emitter writing to w. If autoFlush is set every line is flushed immediately so that
//incremental readers see it without delay. A positive delay is slept after every line
func NewEmitter(w io.Writer, autoFlush bool, delay time.Duration) *Emitter {
	return &Emitter{
		out:       bufio.NewWriter(w),
		autoFlush: autoFlush,
		delay:     delay,
		sleep:     time.Sleep,
		perChan:   make(map[string]int),
	}
}

//SetSleep replaces the function used for pacing. Intended for tests
func (e *Emitter) SetSleep(sleep func(time.Duration)) {
	e.sleep = sleep
}

//Emit writes p as a single protocol line
func (e *Emitter) Emit(p signalGen.DataPoint) error {
	if !ValidChannel(p.Channel) {
		return fmt.Errorf("channel %q : %w", p.Channel, ErrInvalidChannel)
	}
	e.lineBuf = AppendLine(e.lineBuf[:0], p.Channel, p.Values)
	e.lineBuf = append(e.lineBuf, '\n')
	if err := e.writeLine(e.lineBuf); err != nil {
		return err
	}
	e.perChan[p.Channel]++
	return nil
}

//Passthrough writes text followed by a line break. Line breaks inside text are written as they are
func (e *Emitter) Passthrough(text string) error {
	e.lineBuf = append(e.lineBuf[:0], text...)
	e.lineBuf = append(e.lineBuf, '\n')
	return e.writeLine(e.lineBuf)
}

func (e *Emitter) writeLine(line []byte) error {
	if _, err := e.out.Write(line); err != nil {
		return fmt.Errorf("failed to write line : %w", err)
	}
	e.lines++
	if e.autoFlush {
		if err := e.Flush(); err != nil {
			return err
		}
	}
	if e.delay > 0 {
		e.sleep(e.delay)
	}
	return nil
}

//Flush writes any buffered lines to the underlying writer
func (e *Emitter) Flush() error {
	if err := e.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush : %w", err)
	}
	return nil
}

//Lines returns the number of lines written so far, including passthrough lines
func (e *Emitter) Lines() int {
	return e.lines
}

//LinesFor returns the number of data points written for channel
func (e *Emitter) LinesFor(channel string) int {
	return e.perChan[channel]
}

//Channels returns the number of distinct channels written so far
func (e *Emitter) Channels() int {
	return len(e.perChan)
}
