package evolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorf_FormatsMessage(t *testing.T) {
	err := errorf("bad value: %d", 7)
	assert.EqualError(t, err, "bad value: 7")
}

func TestWrap_PrependsMessage(t *testing.T) {
	inner := errorf("inner failure")
	err := wrap(inner, "outer context")
	assert.EqualError(t, err, "outer context: inner failure")
}
