package reactive

import "testing"

func TestStoreBasic(t *testing.T) {
	rt := NewRuntime()
	count := NewStore(rt, 0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	if got := count.Update(func(n int) int { return n * 2 }); got != 10 {
		t.Errorf("expected Update to return 10, got %d", got)
	}
	if count.Peek() != 10 {
		t.Errorf("expected value 10, got %d", count.Peek())
	}
}

func TestStoreRegistersGraphEntry(t *testing.T) {
	rt := NewRuntime()
	s := NewStore(rt, "x")

	if !rt.Graph().Has(s.Source()) {
		t.Fatal("store should have a graph entry from construction")
	}
	if n := len(rt.Graph().Effects(s.Source())); n != 0 {
		t.Errorf("expected empty entry, got %d effects", n)
	}
}

func TestStoreWriteAlwaysNotifies(t *testing.T) {
	rt := NewRuntime()
	count := NewStore(rt, 1)
	runs := 0

	_, deps := Capture(rt, func() int { return count.Get() })
	rt.Bind(func() { runs++ }, deps)

	count.Set(1)
	count.Set(1)
	if runs != 2 {
		t.Errorf("writing an unchanged value should still notify, got %d runs", runs)
	}
}

func TestStoreEffectsRunInBindingOrder(t *testing.T) {
	rt := NewRuntime()
	s := NewStore(rt, 0)
	var order []string

	for _, name := range []string{"a", "b", "c"} {
		name := name
		Subscribe(rt, func() int { return s.Get() }, func() {
			order = append(order, name)
		})
	}

	s.Set(1)
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %d runs, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("run %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestStorePeekDoesNotTrack(t *testing.T) {
	rt := NewRuntime()
	s := NewStore(rt, 42)

	v, deps := Capture(rt, func() int { return s.Peek() })
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
	if len(deps) != 0 {
		t.Errorf("Peek should not record a dependency, got %d", len(deps))
	}
}

func TestStoreAssign(t *testing.T) {
	rt := NewRuntime()

	tests := []struct {
		name    string
		assign  func() (any, error)
		want    any
		wantErr bool
	}{
		{
			name: "same type",
			assign: func() (any, error) {
				s := NewStore(rt, "")
				err := s.Assign("hi")
				return s.Peek(), err
			},
			want: "hi",
		},
		{
			name: "string into int",
			assign: func() (any, error) {
				s := NewStore(rt, 0)
				err := s.Assign("42")
				return s.Peek(), err
			},
			want: 42,
		},
		{
			name: "string into float",
			assign: func() (any, error) {
				s := NewStore(rt, 0.0)
				err := s.Assign("1.5")
				return s.Peek(), err
			},
			want: 1.5,
		},
		{
			name: "string into bool",
			assign: func() (any, error) {
				s := NewStore(rt, false)
				err := s.Assign("true")
				return s.Peek(), err
			},
			want: true,
		},
		{
			name: "int into int64",
			assign: func() (any, error) {
				s := NewStore(rt, int64(0))
				err := s.Assign(7)
				return s.Peek(), err
			},
			want: int64(7),
		},
		{
			name: "bad number",
			assign: func() (any, error) {
				s := NewStore(rt, 0)
				return s.Peek(), s.Assign("abc")
			},
			want:    0,
			wantErr: true,
		},
		{
			name: "struct into int",
			assign: func() (any, error) {
				s := NewStore(rt, 0)
				return s.Peek(), s.Assign(struct{}{})
			},
			want:    0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.assign()
			if (err != nil) != tt.wantErr {
				t.Errorf("Assign() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("value = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestRuntimesAreIndependent(t *testing.T) {
	rt1 := NewRuntime()
	rt2 := NewRuntime()
	a := NewStore(rt1, 0)

	_, deps := Capture(rt2, func() int { return a.Get() })
	if len(deps) != 0 {
		t.Errorf("reads of a store from another runtime must not be captured, got %d", len(deps))
	}
	if rt2.Graph().Has(a.Source()) {
		t.Error("store should only be registered with its own runtime")
	}
}
