package link

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pager/hal"
)

type sent struct {
	dst     hal.Address
	payload []byte
}

type fakeRadio struct {
	err     error
	sent    []sent
	handler hal.ReceiveHandler
}

func (r *fakeRadio) Send(dst hal.Address, payload []byte) error {
	r.sent = append(r.sent, sent{dst: dst, payload: append([]byte(nil), payload...)})
	return r.err
}

func (r *fakeRadio) SetReceiveHandler(h hal.ReceiveHandler) { r.handler = h }

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

var peer = hal.Address{0x98, 0xF4, 0xAB, 0xBC, 0xCE, 0x25}

func TestSendOneByteToPeer(t *testing.T) {
	r := &fakeRadio{}
	m := New(r, peer, nil)
	m.Send(3)
	require.Len(t, r.sent, 1)
	require.Equal(t, peer, r.sent[0].dst)
	require.Equal(t, []byte{3}, r.sent[0].payload)
}

func TestSendErrorLoggedNotRetried(t *testing.T) {
	r := &fakeRadio{err: errors.New("tx busy")}
	var log lines
	m := New(r, peer, &log)
	m.Send(5)
	require.Len(t, r.sent, 1)
	require.Len(t, log, 1)
	require.True(t, strings.Contains(log[0], "tx busy"))
	require.True(t, strings.Contains(log[0], peer.String()))
}

func TestNilRadioFailsQuietly(t *testing.T) {
	var log lines
	m := New(nil, peer, &log)
	m.Send(1)
	require.Len(t, log, 1)
	require.True(t, strings.Contains(log[0], hal.ErrNotImplemented.Error()))
}

type recorder struct {
	frames [][]byte
}

func (r *recorder) OnMessageReceived(payload []byte) error {
	r.frames = append(r.frames, append([]byte(nil), payload...))
	return nil
}

func TestReceiveDeliversEveryFrame(t *testing.T) {
	r := &fakeRadio{}
	var rx recorder
	m := New(r, peer, nil)
	m.Attach(&rx)
	require.NotNil(t, r.handler)

	// A burst far larger than one loop iteration's worth.
	for i := 0; i < 40; i++ {
		r.handler(peer, []byte{1})
	}
	r.handler(peer, []byte{4})

	require.Len(t, rx.frames, 41)
	require.Equal(t, []byte{4}, rx.frames[40])
}

func TestReceiveOversizedLogged(t *testing.T) {
	r := &fakeRadio{}
	var rx recorder
	var log lines
	m := New(r, peer, &log)
	m.Attach(&rx)

	r.handler(peer, make([]byte, MaxFrameBytes))
	require.Empty(t, log)

	r.handler(peer, make([]byte, MaxFrameBytes+1))
	require.Len(t, log, 1)
	require.True(t, strings.Contains(log[0], "oversized frame from "+peer.String()+": 251 bytes"))
	// Still handed on so the receiver can reject it.
	require.Len(t, rx.frames, 2)
	require.Len(t, rx.frames[1], MaxFrameBytes+1)
}
