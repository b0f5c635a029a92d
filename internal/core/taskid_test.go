package core

import (
	"bytes"
	"errors"
	"regexp"
	"testing"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestGenerateID_MatchesUUIDv4Layout(t *testing.T) {
	gen := NewTaskIDGenerator(nil)

	id := gen.GenerateID()
	if !uuidV4Pattern.MatchString(id) {
		t.Errorf("GenerateID() = %q, does not match UUID v4 layout", id)
	}
}

func TestGenerateID_ThousandDistinct(t *testing.T) {
	gen := NewTaskIDGenerator(nil)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen.GenerateID()
		if !uuidV4Pattern.MatchString(id) {
			t.Fatalf("call %d: %q does not match UUID v4 layout", i+1, id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("call %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerateID_DeterministicReader(t *testing.T) {
	// All-zero input still gets the version and variant bits forced.
	gen := NewTaskIDGenerator(bytes.NewReader(make([]byte, 16)))

	id := gen.GenerateID()
	want := "00000000-0000-4000-8000-000000000000"
	if id != want {
		t.Errorf("GenerateID() = %q, want %q", id, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateID_FallsBackWhenReaderFails(t *testing.T) {
	gen := NewTaskIDGenerator(failingReader{})

	id := gen.GenerateID()
	if !uuidV4Pattern.MatchString(id) {
		t.Errorf("GenerateID() = %q, want a valid UUID v4 from the fallback source", id)
	}
}

func TestMathRandReader_FillsOddLengths(t *testing.T) {
	buf := make([]byte, 13)
	n, err := mathRandReader{}.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Read() n = %d, want %d", n, len(buf))
	}
}
