package kmc

import "testing"

func TestNopLoggerNeverPanics(t *testing.T) {
	l := NewNopLogger()
	l.Debugf("x=%d", 1)
	l.Infof("ok")
	l.Warnf("careful")
	l.Errorf("bad: %v", "oops")
	child := l.With(String("k", "v"))
	child.Infof("still fine")
}

func TestDefaultLoggerFallsBackToNop(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("Default must never return nil")
	}
}
