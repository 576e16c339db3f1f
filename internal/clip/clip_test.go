package clip

import (
	"errors"
	"testing"
)

func stub(t *testing.T, native, osc error) {
	t.Helper()
	origNative, origOSC := nativeWriteAll, osc52WriteAll
	nativeWriteAll = func(string) error { return native }
	osc52WriteAll = func(string) error { return osc }
	t.Cleanup(func() {
		nativeWriteAll, osc52WriteAll = origNative, origOSC
	})
}

func TestWrite_NativeFirst(t *testing.T) {
	stub(t, nil, errors.New("should not be tried"))

	method, err := Write("payload")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != MethodNative {
		t.Errorf("expected native method, got %s", method)
	}
}

func TestWrite_FallsBackToOSC52(t *testing.T) {
	stub(t, errors.New("no display"), nil)

	method, err := Write("payload")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != MethodOSC52 {
		t.Errorf("expected osc52 method, got %s", method)
	}
}

func TestWrite_AllBackendsFail(t *testing.T) {
	nativeErr := errors.New("no display")
	oscErr := errors.New("not a terminal")
	stub(t, nativeErr, oscErr)

	_, err := Write("payload")
	if err == nil {
		t.Fatal("expected error when every backend fails")
	}
	if !errors.Is(err, nativeErr) || !errors.Is(err, oscErr) {
		t.Errorf("error should carry both causes, got: %v", err)
	}
}

func TestWriteAllOSC52_RejectsEmpty(t *testing.T) {
	if err := writeAllOSC52(""); err == nil {
		t.Error("expected error for empty text")
	}
}
