package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadInfoMissingFile(t *testing.T) {
	_, err := ReadInfo("/nonexistent/file.mp3")
	if err == nil {
		t.Fatal("ReadInfo on a missing file returned no error")
	}
}

func TestReadInfoNotAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	if err := os.WriteFile(path, []byte("not an audio file"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	info, err := ReadInfo(path)
	if err == nil {
		t.Error("ReadInfo on garbage returned no error")
	}
	// Partial info still comes back: the stat succeeded.
	if info.FileSize != int64(len("not an audio file")) {
		t.Errorf("FileSize = %d, want %d", info.FileSize, len("not an audio file"))
	}
}

func TestReadInfoUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.m4b")
	if err := os.WriteFile(path, []byte("container data"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := ReadInfo(path); err == nil {
		t.Error("ReadInfo on an unsupported container returned no error")
	}
}
