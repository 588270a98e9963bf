package camera

import (
	"math"
	"testing"
)

func TestUpdateAccumulatesHeadingAndWraps(t *testing.T) {
	c := New(70, 16.0/9.0, 0.1, 1000)
	// Push heading most of the way around several times to exercise wrap.
	for i := 0; i < 20; i++ {
		c.Update(3000, 0, 0)
	}
	if c.Heading() < 0 || c.Heading() >= 2*math.Pi {
		t.Fatalf("expected heading wrapped into [0, 2pi), got %v", c.Heading())
	}
}

func TestUpdateClampsPitch(t *testing.T) {
	c := New(70, 1, 0.1, 1000)
	for i := 0; i < 50; i++ {
		c.Update(0, 100000, 0)
	}
	maxPitch := math.Pi/2 - pitchEpsilon
	if c.Pitch() > maxPitch {
		t.Fatalf("expected pitch clamped to %v, got %v", maxPitch, c.Pitch())
	}
}

func TestUpdateSuppressesSingleFrameSpike(t *testing.T) {
	c := New(70, 1, 0.1, 1000)
	c.Update(10, 0, 0) // establish a small last delta
	before := c.Heading()
	c.Update(5000, 0, 0) // wildly disproportionate spike
	after := c.Heading()

	// A raw 5000-delta application would move heading by roughly
	// 5000*0.066 degrees ~= 5.76 rad; the jerk suppression should keep
	// the actual movement much smaller than that.
	rawMove := 5000.0 * degreesPerDelta * math.Pi / 180
	actualMove := math.Abs(wrapAngle(after-before+math.Pi) - math.Pi)
	if actualMove >= rawMove {
		t.Fatalf("expected jerk suppression to shrink the spike, raw=%v actual=%v", rawMove, actualMove)
	}
}

func TestZoomClampsToRange(t *testing.T) {
	c := New(70, 1, 0.1, 1000)
	for i := 0; i < 20; i++ {
		c.Update(0, 0, 1)
	}
	if c.Zoom() != maxZoom {
		t.Fatalf("expected zoom clamped to %d, got %d", maxZoom, c.Zoom())
	}
	for i := 0; i < 30; i++ {
		c.Update(0, 0, -1)
	}
	if c.Zoom() != 0 {
		t.Fatalf("expected zoom clamped to 0, got %d", c.Zoom())
	}
}

func TestDirectionIsUnitLength(t *testing.T) {
	c := New(70, 1, 0.1, 1000)
	c.Update(123, -45, 0)
	d := c.Direction()
	length := float64(d.Len())
	if math.Abs(length-1) > 1e-4 {
		t.Fatalf("expected a unit direction vector, got length %v", length)
	}
}
