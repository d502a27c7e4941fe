package errors

import (
	stderr "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapDoesNotMutateSentinel(t *testing.T) {
	sentinel := New("something failed")
	cause := stderr.New("root cause")

	wrapped := sentinel.Wrap(cause)
	require.NotSame(t, sentinel, wrapped)
	require.Nil(t, sentinel.Unwrap())
	require.Equal(t, cause, wrapped.Unwrap())
	require.Equal(t, "something failed: root cause", wrapped.Error())
}

func TestIsMatchesThroughChain(t *testing.T) {
	inner := New("inner")
	outer := New("outer")

	err := outer.Wrap(inner.Wrap(stderr.New("io fault")))
	require.True(t, Is(err, outer))
	require.True(t, Is(err, inner))
	require.False(t, Is(err, New("unrelated")))

	// interoperates with fmt wrapping
	std := fmt.Errorf("context: %w", err)
	require.True(t, Is(std, inner))
}

func TestAs(t *testing.T) {
	sentinel := New("typed")
	err := fmt.Errorf("outer: %w", sentinel.Wrap(stderr.New("cause")))

	var target *Error
	require.True(t, As(err, &target))
	require.Equal(t, "typed: cause", target.Error())
}
