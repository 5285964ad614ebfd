//go:build unix

package cipher

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowCipher blocks for delay in every call and records when it finished.
type slowCipher struct {
	delay    time.Duration
	err      error
	finished atomic.Bool
	calls    atomic.Int32
}

func (c *slowCipher) Name() string { return "slow" }

func (c *slowCipher) run() error {
	c.calls.Add(1)
	time.Sleep(c.delay)
	c.finished.Store(true)
	return c.err
}

func (c *slowCipher) Decrypt(context.Context, string, string, []byte) error { return c.run() }
func (c *slowCipher) Encrypt(context.Context, string, string, []byte) error { return c.run() }

func TestWithSpinner_WaitsForCipherOnInterrupt(t *testing.T) {
	// keep the test binary alive, the interrupt is meant for the spinner
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	inner := &slowCipher{delay: 600 * time.Millisecond, err: errors.New("still failing")}
	c := WithSpinner(inner)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
	}()

	start := time.Now()
	err := c.Encrypt(context.Background(), "src", "dst", []byte("p"))

	assert.True(t, inner.finished.Load(), "returned before the cipher finished")
	assert.GreaterOrEqual(t, time.Since(start), inner.delay)
	require.Error(t, err)
	assert.Equal(t, "still failing", err.Error())
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestWithSpinner_RunsOnce(t *testing.T) {
	inner := &slowCipher{delay: 10 * time.Millisecond}
	c := WithSpinner(inner)

	require.NoError(t, c.Decrypt(context.Background(), "src", "dst", []byte("p")))
	assert.True(t, inner.finished.Load())
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, "slow", c.Name())
}

type panickyCipher struct{ slowCipher }

func (*panickyCipher) Encrypt(context.Context, string, string, []byte) error { panic("backend bug") }

func TestWithSpinner_PanicReachesCaller(t *testing.T) {
	c := WithSpinner(&panickyCipher{})

	assert.Panics(t, func() {
		_ = c.Encrypt(context.Background(), "src", "dst", []byte("p"))
	})
}
