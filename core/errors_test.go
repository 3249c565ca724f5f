package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			"kind only",
			&ParseError{Kind: ErrUnbalancedGroup, Pos: 7},
			"rtf: unbalanced group at offset 7",
		},
		{
			"with detail",
			&ParseError{Kind: ErrMalformedToken, Pos: 3, Detail: "backslash at end of input"},
			"rtf: malformed token: backslash at end of input at offset 3",
		},
		{
			"with cause",
			&ParseError{Kind: ErrConsumerAborted, Pos: 0, Detail: "text", Err: cause},
			"rtf: consumer aborted: text at offset 0: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("handler refused")
	err := error(&ParseError{Kind: ErrConsumerAborted, Err: cause})

	if !errors.Is(err, ErrConsumerAborted) {
		t.Error("expected errors.Is to match the kind")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
	if errors.Is(err, ErrMalformedToken) {
		t.Error("did not expect a different kind to match")
	}
}

func TestCodePageEncoding(t *testing.T) {
	for _, cp := range []int{437, 850, 874, 932, 936, 949, 950, 1250, 1252, 1258, 10000, 20866, 28591, 65001} {
		if _, ok := CodePageEncoding(cp); !ok {
			t.Errorf("expected code page %d to be supported", cp)
		}
	}
	if _, ok := CodePageEncoding(0); ok {
		t.Error("did not expect code page 0 to be supported")
	}
}

func TestMalformedHelper(t *testing.T) {
	err := malformed(12, "bad %s", "thing")
	if !strings.Contains(err.Error(), "bad thing at offset 12") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
