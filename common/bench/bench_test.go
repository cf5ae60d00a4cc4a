package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeasureExec(t *testing.T) {
	called := false
	d := MeasureExec(func() {
		called = true
		time.Sleep(5 * time.Millisecond)
	})
	assert.True(t, called)
	assert.GreaterOrEqual(t, d, 5*time.Millisecond)
}

func TestPerSecond(t *testing.T) {
	assert.InDelta(t, 500.0, PerSecond(1000, 2*time.Second), 1e-9)
	assert.Equal(t, 0.0, PerSecond(1000, 0))
}
