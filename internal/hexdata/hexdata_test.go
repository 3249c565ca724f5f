package hexdata

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestDecodeBasic tests basic hex decoding
func TestDecodeBasic(t *testing.T) {
	// "Hello" = 48 65 6C 6C 6F
	decoded, err := Decode([]byte("48656C6C6F"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, []byte("Hello")) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: Hello", decoded)
	}
}

// TestDecodeWithWhitespace tests decoding with line breaks between digits
func TestDecodeWithWhitespace(t *testing.T) {
	decoded, err := Decode([]byte("48 65\r\n6c 6\n c6f"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, []byte("Hello")) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: Hello", decoded)
	}
}

// TestDecodeOddDigits tests that a dangling digit becomes a high nibble
func TestDecodeOddDigits(t *testing.T) {
	decoded, err := Decode([]byte("48656C6C6"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, []byte("Hell`")) {
		t.Errorf("decoded data doesn't match\ngot:  %v\nwant: %v", decoded, []byte("Hell`"))
	}
}

// TestDecodeInvalid tests rejection of non-hex bytes
func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("48zz"))
	if !errors.Is(err, ErrInvalidDigit) {
		t.Errorf("expected ErrInvalidDigit, got %v", err)
	}
}

// TestWriterSplitPairs tests digit pairs split across writes
func TestWriterSplitPairs(t *testing.T) {
	var out bytes.Buffer
	d := NewWriter(&out)

	for _, chunk := range []string{"4", "86", "56c", "6c6", "f"} {
		n, err := d.Write([]byte(chunk))
		if err != nil {
			t.Fatalf("Write(%q) failed: %v", chunk, err)
		}
		if n != len(chunk) {
			t.Errorf("Write(%q) = %d, want %d", chunk, n, len(chunk))
		}
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if out.String() != "Hello" {
		t.Errorf("got %q, want Hello", out.String())
	}
	if d.Decoded() != 5 {
		t.Errorf("Decoded() = %d, want 5", d.Decoded())
	}
}

// TestWriterLarge tests input larger than the internal buffer
func TestWriterLarge(t *testing.T) {
	var out bytes.Buffer
	d := NewWriter(&out)

	src := strings.Repeat("ab", 5000)
	if _, err := d.Write([]byte(src)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if out.Len() != 5000 {
		t.Fatalf("decoded %d bytes, want 5000", out.Len())
	}
	if !bytes.Equal(out.Bytes(), bytes.Repeat([]byte{0xab}, 5000)) {
		t.Error("decoded data doesn't match")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// TestWriterPropagatesErrors tests errors from the underlying writer
func TestWriterPropagatesErrors(t *testing.T) {
	d := NewWriter(failingWriter{})
	if _, err := d.Write([]byte("4865")); err == nil {
		t.Error("expected error from underlying writer")
	}
}
