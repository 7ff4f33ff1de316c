package core

import "testing"

func TestInputFrameDirectionPriority(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    Direction
		ok      bool
	}{
		{"none", nil, DirUp, false},
		{"fire only", []Action{ActionFire}, DirUp, false},
		{"left", []Action{ActionLeft}, DirLeft, true},
		{"up wins over right", []Action{ActionRight, ActionUp}, DirUp, true},
		{"down wins over left", []Action{ActionLeft, ActionDown}, DirDown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tt.actions {
				f.Set(a)
			}
			got, ok := f.Direction()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Direction() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInputFrameMergeAndClone(t *testing.T) {
	a := NewInputFrame()
	a.Set(ActionUp)
	b := NewInputFrame()
	b.Set(ActionFire)

	a.Merge(b)
	if !a.Has(ActionUp) || !a.Has(ActionFire) {
		t.Errorf("merged frame = %v, want Up and Fire", a.Actions)
	}

	c := a.Clone()
	a.Clear()
	if !c.Has(ActionUp) || !c.Has(ActionFire) {
		t.Error("clone should survive Clear on the original")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	if m.Player(Player2).Has(ActionFire) {
		t.Error("missing player should have an empty frame")
	}

	f := NewInputFrame()
	f.Set(ActionPause)
	m.SetPlayer(Player2, f)

	if !m.Any(ActionPause) {
		t.Error("Any(Pause) = false, want true")
	}
	if m.Any(ActionRestart) {
		t.Error("Any(Restart) = true, want false")
	}
}

func TestInputLatchHoldsDirection(t *testing.T) {
	l := NewInputLatch(3)
	press := NewInputFrame()
	press.Set(ActionLeft)
	press.Set(ActionFire)
	l.Press(press)

	first := l.Next()
	if !first.Has(ActionLeft) || !first.Has(ActionFire) {
		t.Fatalf("first tick = %v, want Left and Fire", first.Actions)
	}

	for i := 0; i < 2; i++ {
		f := l.Next()
		if !f.Has(ActionLeft) {
			t.Errorf("tick %d lost the held direction", i+2)
		}
		if f.Has(ActionFire) {
			t.Errorf("tick %d repeated a one-shot action", i+2)
		}
	}

	if f := l.Next(); f.Has(ActionLeft) {
		t.Error("direction should be released after the hold")
	}
}

func TestInputLatchNewDirectionReplacesHeld(t *testing.T) {
	l := NewInputLatch(5)
	up := NewInputFrame()
	up.Set(ActionUp)
	right := NewInputFrame()
	right.Set(ActionRight)

	l.Press(up)
	l.Next()
	l.Press(right)

	f := l.Next()
	if f.Has(ActionUp) || !f.Has(ActionRight) {
		t.Errorf("frame = %v, want only Right", f.Actions)
	}

	l.Release()
	if f := l.Next(); len(f.Actions) != 0 {
		t.Errorf("frame after Release = %v, want empty", f.Actions)
	}
}
