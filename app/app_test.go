package app

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pager/hal"
	"pager/internal/config"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) count(sub string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			n++
		}
	}
	return n
}

type testPin struct {
	name  string
	caps  hal.GPIOCaps
	level bool
	boom  bool
}

func (p *testPin) Name() string                               { return p.name }
func (p *testPin) Caps() hal.GPIOCaps                         { return p.caps }
func (p *testPin) Configure(hal.GPIOMode, hal.GPIOPull) error { return nil }
func (p *testPin) Write(level bool) error                     { p.level = level; return nil }

func (p *testPin) Read() (bool, error) {
	if p.boom {
		panic("button line shorted")
	}
	return p.level, nil
}

type testGPIO []*testPin

func (g testGPIO) PinCount() int          { return len(g) }
func (g testGPIO) Pin(id int) hal.GPIOPin { return g[id] }

func (g testGPIO) ByName(name string) hal.GPIOPin {
	for _, p := range g {
		if p.name == name {
			return p
		}
	}
	return nil
}

type testFB struct {
	buf      []byte
	presents int
	err      error
}

func (f *testFB) Width() int              { return 128 }
func (f *testFB) Height() int             { return 64 }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return 256 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error          { f.presents++; return f.err }

func (f *testFB) ClearRGB(r, g, b uint8) {
	var lo, hi byte
	if r|g|b != 0 {
		lo, hi = 0xff, 0xff
	}
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i], f.buf[i+1] = lo, hi
	}
}

func (f *testFB) Framebuffer() hal.Framebuffer { return f }

type testRadio struct {
	mu      sync.Mutex
	sent    [][]byte
	dst     []hal.Address
	handler hal.ReceiveHandler
}

func (r *testRadio) Send(dst hal.Address, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, append([]byte(nil), payload...))
	r.dst = append(r.dst, dst)
	return nil
}

func (r *testRadio) SetReceiveHandler(h hal.ReceiveHandler) {
	r.mu.Lock()
	r.handler = h
	r.mu.Unlock()
}

func (r *testRadio) deliver(payload ...byte) {
	r.mu.Lock()
	h := r.handler
	r.mu.Unlock()
	h(hal.Address{0x98, 0xF4, 0xAB, 0xBC, 0xCE, 0x25}, payload)
}

type testClock struct{ t time.Duration }

func (c *testClock) Now() time.Duration { return c.t }

type testHAL struct {
	log   *testLogger
	gpio  testGPIO
	state *testPin
	send  *testPin
	red   *testPin
	green *testPin
	fb    *testFB
	radio *testRadio
	clock *testClock
}

func newTestHAL() *testHAL {
	h := &testHAL{
		log:   &testLogger{},
		state: &testPin{name: hal.PinStateButton, caps: hal.GPIOCapInput | hal.GPIOCapPullUp, level: true},
		send:  &testPin{name: hal.PinSendButton, caps: hal.GPIOCapInput | hal.GPIOCapPullUp, level: true},
		red:   &testPin{name: hal.PinRedLED, caps: hal.GPIOCapOutput},
		green: &testPin{name: hal.PinGreenLED, caps: hal.GPIOCapOutput},
		fb:    &testFB{buf: make([]byte, 128*64*2)},
		radio: &testRadio{},
		clock: &testClock{},
	}
	h.gpio = testGPIO{h.state, h.send, h.red, h.green}
	return h
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) GPIO() hal.GPIO       { return h.gpio }
func (h *testHAL) Display() hal.Display { return h.fb }
func (h *testHAL) Radio() hal.Radio     { return h.radio }
func (h *testHAL) Clock() hal.Clock     { return h.clock }

// tick runs one loop iteration with the given buttons held, then advances
// the clock by the loop interval.
func (h *testHAL) tick(t *testing.T, step func() error, stateDown, sendDown bool) {
	t.Helper()
	h.state.level = !stateDown
	h.send.level = !sendDown
	require.NoError(t, step())
	h.state.level, h.send.level = true, true
	h.clock.t += 100 * time.Millisecond
}

func TestSetup(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())
	require.NotNil(t, step)
	require.Equal(t, 1, h.log.count("setup complete"))
	require.Equal(t, 1, h.log.count("peer 98:F4:AB:BC:CE:25"))
	require.NotNil(t, h.radio.handler)
	require.NotZero(t, h.fb.presents)

	require.NoError(t, step())
	require.Empty(t, h.radio.sent)
	require.False(t, h.red.level)
	require.False(t, h.green.level)
}

func TestSetupMissingButtons(t *testing.T) {
	h := newTestHAL()
	h.gpio = testGPIO{h.red, h.green}
	step := New(h, config.Default())
	require.Error(t, step())
	require.Equal(t, 1, h.log.count("setup failed"))
}

func TestCallAnsweredAndCommitted(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())

	h.radio.deliver(4)
	h.tick(t, step, false, false)
	require.Equal(t, 1, h.log.count("call received"))
	require.NotEqual(t, h.red.level, h.green.level)
	require.Empty(t, h.radio.sent)

	// Answer: state button sends 5 and stops the flashing.
	h.tick(t, step, true, false)
	require.Equal(t, [][]byte{{5}}, h.radio.sent)
	require.Equal(t, hal.Address{0x98, 0xF4, 0xAB, 0xBC, 0xCE, 0x25}, h.radio.dst[0])
	require.False(t, h.red.level)
	require.False(t, h.green.level)

	// Two more state presses select entry 2, send commits value 3.
	h.tick(t, step, true, false)
	h.tick(t, step, true, false)
	h.tick(t, step, false, true)
	require.Equal(t, [][]byte{{5}, {3}}, h.radio.sent)

	// Nothing further happens on send outside the menu.
	h.tick(t, step, false, true)
	require.Len(t, h.radio.sent, 2)
}

func TestSendButtonLeavesNotification(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())
	h.radio.deliver(4)
	h.tick(t, step, false, false)

	h.tick(t, step, false, true)
	// 4 -> 5 silently, then selection 0 is committed as 1 (Waiting).
	require.Equal(t, [][]byte{{1}}, h.radio.sent)
	require.False(t, h.red.level)
	require.True(t, h.green.level)
}

func TestFlashRateIndependentOfLoop(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())
	h.radio.deliver(4)

	toggles := 0
	prev := false
	for i := 0; i < 50; i++ {
		require.NoError(t, step())
		require.NotEqual(t, h.red.level, h.green.level)
		if i > 0 && h.red.level != prev {
			toggles++
		}
		prev = h.red.level
		h.clock.t += 10 * time.Millisecond
	}
	// 490ms of loop time: never a full flash interval.
	require.Zero(t, toggles)
}

func TestInvalidFramesIgnored(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())

	h.radio.deliver()
	h.radio.deliver(4, 4)
	h.radio.deliver(make([]byte, 300)...)
	h.radio.deliver(2)
	h.tick(t, step, false, false)

	require.Equal(t, 3, h.log.count("invalid message length"))
	require.Equal(t, 1, h.log.count("unexpected state"))
	require.Equal(t, 1, h.log.count("oversized frame"))
	require.False(t, h.red.level)
	require.False(t, h.green.level)

	// Still idle: a call is accepted afterwards.
	h.radio.deliver(4)
	h.tick(t, step, false, false)
	require.Equal(t, 1, h.log.count("call received"))
}

func TestCallBehindBurstAccepted(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())
	for i := 0; i < 20; i++ {
		h.radio.deliver(1)
	}
	h.radio.deliver(4)
	h.tick(t, step, false, false)

	require.Equal(t, 20, h.log.count("received message: state = 1"))
	require.Equal(t, 1, h.log.count("call received"))
	require.NotEqual(t, h.red.level, h.green.level)
}

func TestDisplayErrorLoggedAgainAfterRecovery(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())
	h.fb.err = errors.New("i2c nack")

	h.tick(t, step, false, false)
	h.tick(t, step, false, false)
	require.Equal(t, 1, h.log.count("i2c nack"))

	h.fb.err = nil
	h.tick(t, step, false, false)
	require.Equal(t, 1, h.log.count("i2c nack"))

	h.fb.err = errors.New("i2c nack")
	h.tick(t, step, false, false)
	require.Equal(t, 2, h.log.count("i2c nack"))
}

func TestEdgeTriggeredInput(t *testing.T) {
	h := newTestHAL()
	cfg := config.Default()
	cfg.Input.EdgeTriggered = true
	step := New(h, cfg)
	h.radio.deliver(4)
	require.NoError(t, step())

	// Held across three iterations: answered once, no menu advance.
	h.state.level = false
	for i := 0; i < 3; i++ {
		require.NoError(t, step())
	}
	h.state.level = true
	require.NoError(t, step())

	h.send.level = false
	require.NoError(t, step())
	require.Equal(t, [][]byte{{5}, {1}}, h.radio.sent)
}

func TestPanicShownAndReturned(t *testing.T) {
	h := newTestHAL()
	step := New(h, config.Default())
	h.state.boom = true

	err := step()
	require.True(t, errors.Is(err, ErrPanic))
	require.Equal(t, 1, h.log.count("Pager Panic: button line shorted"))
	// Panic screen has a light background.
	require.Equal(t, byte(0xff), h.fb.buf[0])
}
