package kmc

import (
	"errors"
	"testing"
)

func TestErrorUnwrapChain(t *testing.T) {
	cause := errors.New("boom")
	wrapped := wrapError(cause, CodeRateNonFinite, "rate computation failed")
	if !errors.Is(wrapped, cause) {
		t.Fatalf("errors.Is must see through the wrapped cause")
	}
}

func TestWrapErrorPreservesOriginalCode(t *testing.T) {
	inner := newError(CodeInvalidProportions, "bad proportions")
	outer := wrapError(inner, CodeUnknown, "construction failed")
	if outer.Code != CodeInvalidProportions {
		t.Fatalf("expected code to be preserved from inner error, got %v", outer.Code)
	}
}

func TestIsCodeWalksChain(t *testing.T) {
	inner := newError(CodeClockRegression, "negative delta")
	outer := wrapError(inner, CodeUnknown, "operations aborted")
	if !IsCode(outer, CodeClockRegression) {
		t.Fatalf("IsCode must find the code through the wrap chain")
	}
	if IsCode(outer, CodeRateNonFinite) {
		t.Fatalf("IsCode must not match an unrelated code")
	}
}

func TestWithDetailDoesNotMutateOriginal(t *testing.T) {
	base := newError(CodeInsufficientSites, "no room")
	detailed := base.WithDetail("rarest variant has zero sites")
	if base.Detail != "" {
		t.Fatalf("WithDetail must not mutate the receiver")
	}
	if detailed.Detail == "" {
		t.Fatalf("expected the copy to carry the detail")
	}
}
