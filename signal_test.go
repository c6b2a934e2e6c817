package logicsim_test

import (
	"testing"

	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

func TestParseSignal(t *testing.T) {
	td := []struct {
		in  string
		out sim.Signal
		ok  bool
	}{
		{"low", L, true},
		{" HIGH ", H, true},
		{"0", L, true},
		{"1", H, true},
		{"true", H, true},
		{"False", L, true},
		{"2", L, false},
		{"", L, false},
		{"hi", L, false},
	}
	for _, d := range td {
		s, err := sim.ParseSignal(d.in)
		if d.ok != (err == nil) {
			t.Errorf("ParseSignal(%q): unexpected error value %v", d.in, err)
			continue
		}
		if !d.ok {
			if errors.Cause(err) != sim.ErrInvalidSignal {
				t.Errorf("ParseSignal(%q): expected ErrInvalidSignal, got %v", d.in, err)
			}
			continue
		}
		if s != d.out {
			t.Errorf("ParseSignal(%q) = %v, expected %v", d.in, s, d.out)
		}
	}
}

func TestSignal_text(t *testing.T) {
	for _, s := range []sim.Signal{L, H} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var v sim.Signal
		if err = v.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if v != s {
			t.Errorf("%v: text round trip gave %v", s, v)
		}
	}
	if _, err := sim.Signal(3).MarshalText(); errors.Cause(err) != sim.ErrInvalidSignal {
		t.Errorf("expected ErrInvalidSignal, got %v", err)
	}
	if s := sim.Signal(3).String(); s != "Signal(3)" {
		t.Errorf("unexpected string %q", s)
	}
	if L.Not() != H || H.Not() != L {
		t.Error("Not is broken")
	}
}

func TestInputSource_SetValue(t *testing.T) {
	in := sim.NewInput("in", H)
	if err := in.SetValue(sim.Signal(42)); err != sim.ErrInvalidSignal {
		t.Fatalf("expected ErrInvalidSignal, got %v", err)
	}
	expect(t, in, H)
	if err := in.SetValue(L); err != nil {
		t.Fatal(err)
	}
	expect(t, in, L)
	in.Toggle()
	expect(t, in, H)

	// invalid initial values default to LOW
	expect(t, sim.NewInput("bad", sim.Signal(7)), L)
}
