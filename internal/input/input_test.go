package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pager/hal"
)

type fakePin struct {
	name  string
	caps  hal.GPIOCaps
	mode  hal.GPIOMode
	pull  hal.GPIOPull
	level bool
	err   error
}

func (p *fakePin) Name() string           { return p.name }
func (p *fakePin) Caps() hal.GPIOCaps     { return p.caps }
func (p *fakePin) Read() (bool, error)    { return p.level, p.err }
func (p *fakePin) Write(level bool) error { return nil }

func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	p.mode, p.pull = mode, pull
	return nil
}

type fakeGPIO []*fakePin

func (g fakeGPIO) PinCount() int          { return len(g) }
func (g fakeGPIO) Pin(id int) hal.GPIOPin { return g[id] }

func (g fakeGPIO) ByName(name string) hal.GPIOPin {
	for _, p := range g {
		if p.name == name {
			return p
		}
	}
	return nil
}

func newButtons() (*fakePin, *fakePin, fakeGPIO) {
	st := &fakePin{name: hal.PinStateButton, caps: hal.GPIOCapInput | hal.GPIOCapPullUp, level: true}
	snd := &fakePin{name: hal.PinSendButton, caps: hal.GPIOCapInput, level: true}
	return st, snd, fakeGPIO{st, snd}
}

func TestNewPollerConfiguresInputs(t *testing.T) {
	st, snd, g := newButtons()
	_, err := NewPoller(g, Level)
	require.NoError(t, err)
	require.Equal(t, hal.GPIOModeInput, st.mode)
	require.Equal(t, hal.GPIOPullUp, st.pull)
	require.Equal(t, hal.GPIOPullNone, snd.pull)
}

func TestNewPollerMissingPin(t *testing.T) {
	_, err := NewPoller(fakeGPIO{{name: hal.PinStateButton}}, Level)
	require.True(t, errors.Is(err, ErrNoPin))
	_, err = NewPoller(nil, Level)
	require.True(t, errors.Is(err, ErrNoPin))
}

func TestPollActiveLowLevel(t *testing.T) {
	st, snd, g := newButtons()
	p, err := NewPoller(g, Level)
	require.NoError(t, err)

	s, d, err := p.Poll()
	require.NoError(t, err)
	require.False(t, s)
	require.False(t, d)

	st.level = false
	snd.level = false
	for i := 0; i < 3; i++ {
		s, d, err = p.Poll()
		require.NoError(t, err)
		require.True(t, s)
		require.True(t, d)
	}
}

func TestPollEdge(t *testing.T) {
	st, _, g := newButtons()
	p, err := NewPoller(g, Edge)
	require.NoError(t, err)

	st.level = false
	s, _, _ := p.Poll()
	require.True(t, s)
	s, _, _ = p.Poll()
	require.False(t, s)

	st.level = true
	s, _, _ = p.Poll()
	require.False(t, s)
	st.level = false
	s, _, _ = p.Poll()
	require.True(t, s)
}

func TestPollReadError(t *testing.T) {
	st, snd, g := newButtons()
	p, err := NewPoller(g, Level)
	require.NoError(t, err)

	boom := errors.New("boom")
	st.err = boom
	snd.level = false
	s, d, err := p.Poll()
	require.True(t, errors.Is(err, boom))
	require.False(t, s)
	require.True(t, d)
}
