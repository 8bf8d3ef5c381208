package emitter

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"gendata/signalGen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		channel string
		values  []float64
		want    string
	}{
		"bar-example": {
			channel: "Bar",
			values:  []float64{-0.5, -0.5, 0.2},
			want:    "~.Bar@-0.5,-0.5,0.2,",
		},
		"integral-values-without-fraction": {
			channel: "d",
			values:  []float64{12, 0},
			want:    "~.d@12,0,",
		},
		"single-value": {
			channel: "x",
			values:  []float64{3.25},
			want:    "~.x@3.25,",
		},
		"no-values": {
			channel: "empty",
			values:  nil,
			want:    "~.empty@",
		},
		"shortest-round-trip": {
			channel: "e",
			values:  []float64{0.1 + 0.2, 1e-7},
			want:    "~.e@0.30000000000000004,1e-07,",
		},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, c.want, FormatLine(c.channel, c.values))
		})
	}
}

func TestEmitter_Emit(t *testing.T) {
	t.Parallel()

	// Given
	out := &bytes.Buffer{}
	em := NewEmitter(out, true, 0)

	// When
	require.NoError(t, em.Emit(signalGen.NewDataPoint("Bar", -0.5, -0.5, 0.2)))
	require.NoError(t, em.Emit(signalGen.NewDataPoint("A", 1, -1)))
	require.NoError(t, em.Passthrough("-0.05"))
	require.NoError(t, em.Emit(signalGen.NewDataPoint("A", 0.5, 0.5)))

	// Then
	assert.Equal(t, "~.Bar@-0.5,-0.5,0.2,\n~.A@1,-1,\n-0.05\n~.A@0.5,0.5,\n", out.String())
	assert.Equal(t, 4, em.Lines())
	assert.Equal(t, 2, em.LinesFor("A"))
	assert.Equal(t, 1, em.LinesFor("Bar"))
	assert.Equal(t, 0, em.LinesFor("missing"))
	assert.Equal(t, 2, em.Channels())
}

func TestEmitter_InvalidChannel(t *testing.T) {
	t.Parallel()

	for _, channel := range []string{"", "a@b", "line\nbreak", "cr\r"} {
		out := &bytes.Buffer{}
		em := NewEmitter(out, true, 0)

		err := em.Emit(signalGen.NewDataPoint(channel, 1))

		assert.ErrorIs(t, err, ErrInvalidChannel, "channel %q", channel)
		assert.Empty(t, out.String(), "channel %q", channel)
		assert.Equal(t, 0, em.Lines())
	}
}

func TestEmitter_AutoFlush(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		autoFlush       bool
		wantBeforeFlush string
		wantAfterFlush  string
	}{
		"flushes-every-line": {
			autoFlush:       true,
			wantBeforeFlush: "~.a@1,\n",
			wantAfterFlush:  "~.a@1,\n",
		},
		"buffers-until-flush": {
			autoFlush:       false,
			wantBeforeFlush: "",
			wantAfterFlush:  "~.a@1,\n",
		},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}
			em := NewEmitter(out, c.autoFlush, 0)

			require.NoError(t, em.Emit(signalGen.NewDataPoint("a", 1)))
			assert.Equal(t, c.wantBeforeFlush, out.String())

			require.NoError(t, em.Flush())
			assert.Equal(t, c.wantAfterFlush, out.String())
		})
	}
}

func TestEmitter_Delay(t *testing.T) {
	t.Parallel()

	// Given
	slept := make([]time.Duration, 0)
	em := NewEmitter(&bytes.Buffer{}, true, 80*time.Millisecond)
	em.SetSleep(func(d time.Duration) {
		slept = append(slept, d)
	})

	// When
	require.NoError(t, em.Emit(signalGen.NewDataPoint("a", 1)))
	require.NoError(t, em.Passthrough("text"))
	require.NoError(t, em.Emit(signalGen.NewDataPoint("a", 2)))

	// Then
	assert.Equal(t, []time.Duration{80 * time.Millisecond, 80 * time.Millisecond, 80 * time.Millisecond}, slept)
}

func TestEmitter_NoDelayDoesNotSleep(t *testing.T) {
	t.Parallel()

	em := NewEmitter(&bytes.Buffer{}, true, 0)
	em.SetSleep(func(d time.Duration) {
		t.Errorf("unexpected sleep of %v", d)
	})
	require.NoError(t, em.Emit(signalGen.NewDataPoint("a", 1)))
}

type failingWriter struct{}

var errClosed = errors.New("stream closed")

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errClosed
}

func TestEmitter_WriteFailure(t *testing.T) {
	t.Parallel()

	em := NewEmitter(failingWriter{}, true, 0)
	err := em.Emit(signalGen.NewDataPoint("a", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), errClosed.Error())

	buffered := NewEmitter(failingWriter{}, false, 0)
	require.NoError(t, buffered.Emit(signalGen.NewDataPoint("a", 1)))
	assert.Error(t, buffered.Flush())
}
