package gpio

import (
	"errors"
	"testing"
)

func TestFakeButtonConsumesSamples(t *testing.T) {
	f := NewFakeButton([]bool{true, true, false})

	want := []bool{true, true, false, false, false}
	for i, w := range want {
		got, err := f.Pressed()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("sample %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakeButtonNoSamples(t *testing.T) {
	f := NewFakeButton(nil)
	if _, err := f.Pressed(); err == nil {
		t.Error("expected error with no samples configured")
	}
}

func TestFakeButtonReadError(t *testing.T) {
	f := NewFakeButton([]bool{true})
	f.ReadError = errors.New("boom")
	if _, err := f.Pressed(); err == nil {
		t.Error("expected injected read error")
	}
}

func TestFakeButtonReset(t *testing.T) {
	f := NewFakeButton([]bool{true, false})
	f.Pressed()
	f.Pressed()
	f.Close()
	f.Reset()

	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	got, err := f.Pressed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("after Reset, first sample should be returned again")
	}
}
