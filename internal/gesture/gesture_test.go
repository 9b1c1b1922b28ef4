package gesture

import (
	"testing"
	"time"
)

var testCfg = Config{
	TouchSlop:        8,
	DoubleTapSlop:    100,
	MinFlingVelocity: 50,
	DoubleTapTimeout: 300 * time.Millisecond,
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSingleTap(t *testing.T) {
	c := NewClassifier(testCfg)
	t0 := time.Unix(1000, 0)

	if got := kinds(c.Down(100, 100, t0)); !equalKinds(got, []Kind{Down}) {
		t.Fatalf("Down = %v, want [down]", got)
	}
	if got := kinds(c.Up(102, 101, t0.Add(80*time.Millisecond))); !equalKinds(got, []Kind{SingleTapUp}) {
		t.Fatalf("Up = %v, want [single_tap_up]", got)
	}

	// Still inside the double tap window.
	if got := c.Poll(t0.Add(200 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("early Poll = %v, want nothing", kinds(got))
	}
	if got := kinds(c.Poll(t0.Add(500 * time.Millisecond))); !equalKinds(got, []Kind{SingleTapConfirmed}) {
		t.Fatalf("Poll = %v, want [single_tap_confirmed]", got)
	}
	// Confirmed only once.
	if got := c.Poll(t0.Add(time.Second)); len(got) != 0 {
		t.Fatalf("second Poll = %v, want nothing", kinds(got))
	}
}

func TestDoubleTap(t *testing.T) {
	c := NewClassifier(testCfg)
	t0 := time.Unix(1000, 0)

	c.Down(100, 100, t0)
	c.Up(100, 100, t0.Add(50*time.Millisecond))

	got := kinds(c.Down(110, 105, t0.Add(200*time.Millisecond)))
	if !equalKinds(got, []Kind{Down, DoubleTap}) {
		t.Fatalf("second Down = %v, want [down double_tap]", got)
	}
	got = kinds(c.Up(110, 105, t0.Add(260*time.Millisecond)))
	if !equalKinds(got, []Kind{DoubleTapEvent}) {
		t.Fatalf("second Up = %v, want [double_tap_event]", got)
	}
	if got := c.Poll(t0.Add(2 * time.Second)); len(got) != 0 {
		t.Fatalf("Poll after double tap = %v, want nothing", kinds(got))
	}
}

func TestSlowSecondTapIsNotDoubleTap(t *testing.T) {
	c := NewClassifier(testCfg)
	t0 := time.Unix(1000, 0)

	c.Down(100, 100, t0)
	c.Up(100, 100, t0.Add(50*time.Millisecond))

	got := kinds(c.Down(100, 100, t0.Add(900*time.Millisecond)))
	if !equalKinds(got, []Kind{Down}) {
		t.Fatalf("late Down = %v, want [down]", got)
	}
	got = kinds(c.Up(100, 100, t0.Add(950*time.Millisecond)))
	if !equalKinds(got, []Kind{SingleTapUp}) {
		t.Fatalf("late Up = %v, want [single_tap_up]", got)
	}
}

func TestFarSecondTapIsNotDoubleTap(t *testing.T) {
	c := NewClassifier(testCfg)
	t0 := time.Unix(1000, 0)

	c.Down(10, 10, t0)
	c.Up(10, 10, t0.Add(50*time.Millisecond))

	got := kinds(c.Down(400, 400, t0.Add(150*time.Millisecond)))
	if !equalKinds(got, []Kind{Down}) {
		t.Fatalf("far Down = %v, want [down]", got)
	}
}

func TestFling(t *testing.T) {
	tests := []struct {
		name       string
		toX, toY   float64
		dur        time.Duration
		want       []Kind
		positiveVX bool
	}{
		{"fast right", 400, 110, 100 * time.Millisecond, []Kind{Fling}, true},
		{"fast left", 0, 100, 100 * time.Millisecond, []Kind{Fling}, false},
		{"slow drag", 130, 100, 2 * time.Second, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(testCfg)
			t0 := time.Unix(1000, 0)
			c.Down(100, 100, t0)
			events := c.Up(tt.toX, tt.toY, t0.Add(tt.dur))
			if got := kinds(events); !equalKinds(got, tt.want) {
				t.Fatalf("Up = %v, want %v", got, tt.want)
			}
			if len(events) == 1 && (events[0].VelocityX > 0) != tt.positiveVX {
				t.Errorf("VelocityX = %v, want positive=%v", events[0].VelocityX, tt.positiveVX)
			}
		})
	}
}

func TestFlingVelocity(t *testing.T) {
	c := NewClassifier(testCfg)
	t0 := time.Unix(1000, 0)
	c.Down(0, 0, t0)
	events := c.Up(300, 0, t0.Add(500*time.Millisecond))
	if len(events) != 1 {
		t.Fatalf("expected one event, got %v", kinds(events))
	}
	if events[0].VelocityX != 600 || events[0].VelocityY != 0 {
		t.Errorf("velocity = (%v, %v), want (600, 0)", events[0].VelocityX, events[0].VelocityY)
	}
}

func TestUpWithoutDown(t *testing.T) {
	c := NewClassifier(testCfg)
	if got := c.Up(1, 1, time.Unix(0, 0)); got != nil {
		t.Errorf("Up without Down = %v, want nil", kinds(got))
	}
}

func TestReset(t *testing.T) {
	c := NewClassifier(testCfg)
	t0 := time.Unix(1000, 0)
	c.Down(0, 0, t0)
	c.Up(0, 0, t0.Add(10*time.Millisecond))
	c.Reset()

	if got := c.Poll(t0.Add(time.Second)); len(got) != 0 {
		t.Errorf("Poll after Reset = %v, want nothing", kinds(got))
	}
	if got := kinds(c.Down(0, 0, t0.Add(50*time.Millisecond))); !equalKinds(got, []Kind{Down}) {
		t.Errorf("Down after Reset = %v, want [down]", got)
	}
}

func TestKindString(t *testing.T) {
	if Fling.String() != "fling" || DoubleTapEvent.String() != "double_tap_event" {
		t.Errorf("unexpected names %q %q", Fling, DoubleTapEvent)
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}

func TestTimebase(t *testing.T) {
	now := time.Unix(5000, 0)
	// Ticks had already reached 1500 when the base was taken.
	tb := NewTimebase(now, 1500)

	if got := tb.At(1500); !got.Equal(now) {
		t.Errorf("At(1500) = %v, want %v", got, now)
	}
	if got := tb.At(1800).Sub(tb.At(1500)); got != 300*time.Millisecond {
		t.Errorf("tick spacing = %v, want 300ms", got)
	}
}

func TestPollOnEventTimebase(t *testing.T) {
	c := NewClassifier(testCfg)
	tb := NewTimebase(time.Unix(5000, 0), 60000)

	c.Down(100, 100, tb.At(60100))
	c.Up(100, 100, tb.At(60150))

	if got := c.Poll(tb.At(60150 + 300)); len(got) != 0 {
		t.Fatalf("Poll at the timeout = %v, want nothing", kinds(got))
	}
	if got := kinds(c.Poll(tb.At(60150 + 301))); !equalKinds(got, []Kind{SingleTapConfirmed}) {
		t.Fatalf("Poll past the timeout = %v, want [single_tap_confirmed]", got)
	}
}
