package protocol

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/engine-driver-go/internal/event"
)

func TestCommandBuilders(t *testing.T) {
	tests := []struct {
		name string
		cmd  event.Command
		want string
	}{
		{"prepare", Prepare(15, 42), "mnjprepare 15 42"},
		{"thread count", ThreadCount(4), "tlp num 4"},
		{"hash size", HashSize(22), "hash 22"},
		{"dfpn client", DfpnClient("192.168.0.10", 4083), "dfpn_client 192.168.0.10 4083"},
		{"mnj with pv", Mnj("example.org", 4082, "node_1", 8, 18, true), "mnj example.org 4082 node_1 8 18 1"},
		{"mnj without pv", Mnj("example.org", 4082, "node_1", 8, 18, false), "mnj example.org 4082 node_1 8 18 0"},
		{"dfpn connect", DfpnConnect("example.org", 4084, "solver"), "dfpn connect example.org 4084 solver"},
		{"quit", Quit(), "quit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cmd.Text)
			require.NotEmpty(t, tt.cmd.ID)
		})
	}
}

func TestNewCommand(t *testing.T) {
	cmd, ok := NewCommand("  usi  \r\n")
	require.True(t, ok)
	require.Equal(t, "usi", cmd.Text)

	_, ok = NewCommand("   \t ")
	require.False(t, ok)

	_, ok = NewCommand("")
	require.False(t, ok)

	a, _ := NewCommand("go")
	b, _ := NewCommand("go")
	require.NotEqual(t, a.ID, b.ID)
}

func TestMatchHandshake(t *testing.T) {
	tests := []struct {
		line  string
		token string
		ok    bool
	}{
		{"info mnjprepare ok", "ok", true},
		{"INFO MNJPREPARE OK", "OK", true},
		{"info mnjprepare   failed  ", "failed", true},
		{"info mnjprepareok", "ok", true},
		{"info mnjprepare", "", false},
		{"info mnjprepare ok extra", "", false},
		{" info mnjprepare ok", "", false},
		{"info string mnjprepare ok", "", false},
		{"bestmove 7g7f", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			token, ok := MatchHandshake(tt.line)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.token, token)
		})
	}
}

func TestHandshake_ReadyOnce(t *testing.T) {
	var h Handshake

	require.Equal(t, HandshakeUnknown, h.State())

	_, state, transitioned := h.Observe("info string thinking")
	require.False(t, transitioned)
	require.Equal(t, HandshakeUnknown, state)

	token, state, transitioned := h.Observe("info mnjprepare ok")
	require.True(t, transitioned)
	require.Equal(t, "ok", token)
	require.Equal(t, HandshakeReady, state)

	_, state, transitioned = h.Observe("info mnjprepare ok")
	require.False(t, transitioned)
	require.Equal(t, HandshakeReady, state)
}

func TestHandshake_FailureIsPermanent(t *testing.T) {
	var h Handshake

	_, state, transitioned := h.Observe("info mnjprepare ng")
	require.True(t, transitioned)
	require.Equal(t, HandshakeFailed, state)

	_, state, transitioned = h.Observe("info mnjprepare ok")
	require.False(t, transitioned)
	require.Equal(t, HandshakeFailed, state)
}

func TestHandshake_ConcurrentObserveTransitionsOnce(t *testing.T) {
	var (
		h     Handshake
		wins  atomic.Int32
		start = make(chan struct{})
		wg    sync.WaitGroup
	)

	for range 16 {
		wg.Go(func() {
			<-start

			if _, _, ok := h.Observe("info mnjprepare ok"); ok {
				wins.Add(1)
			}
		})
	}

	close(start)
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, HandshakeReady, h.State())
}

func TestHandshakeStateString(t *testing.T) {
	assert.Equal(t, "unknown", HandshakeUnknown.String())
	assert.Equal(t, "failed", HandshakeFailed.String())
	assert.Equal(t, "ready", HandshakeReady.String())
	assert.Equal(t, "invalid", HandshakeState(9).String())
}

func TestClassifier(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		line string
		want Verdict
	}{
		{"ERROR: Can't open a file, fv.bin", Verdict{Abort: true, Reason: event.FatalError}},
		{"ERROR: Can't open a file, book.bin", Verdict{Abort: true, Reason: event.FatalError}},
		{"ERROR: invalid move", Verdict{Abort: true, Reason: event.ProtocolError}},
		{"WARNING: hash table too small", Verdict{Abort: true, Reason: event.ProtocolError}},
		{"ERROR:no space", Verdict{}},
		{"error: lower case", Verdict{}},
		{"some diagnostic output", Verdict{}},
		{"", Verdict{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			require.Equal(t, tt.want, c.Classify(tt.line))
		})
	}
}

func TestClassifier_CustomFatalPrefixes(t *testing.T) {
	c := NewClassifier([]string{"ERROR: out of memory"})

	require.Equal(t, event.FatalError, c.Classify("ERROR: out of memory (hash 30)").Reason)
	require.Equal(t, event.ProtocolError, c.Classify("ERROR: Can't open a file, fv.bin").Reason)
}
