package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSniffMimeHTTP(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"gif", []byte("GIF89a..."), "image/gif"},
		{"bmp", []byte("BM...."), "image/bmp"},
		{"unknown", []byte("hello"), "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffMimeHTTP(tt.in); got != tt.want {
				t.Errorf("SniffMimeHTTP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	b, mime, err := DecodeBase64MaybeDataURL("data:image/png;base64,aGVsbG8=")
	if err != nil || string(b) != "hello" || mime != "image/png" {
		t.Errorf("got %q %q %v", b, mime, err)
	}
	b, mime, err = DecodeBase64MaybeDataURL("  aGVsbG8=  ")
	if err != nil || string(b) != "hello" || mime != "" {
		t.Errorf("got %q %q %v", b, mime, err)
	}
	if _, _, err := DecodeBase64MaybeDataURL("!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestPickMIME(t *testing.T) {
	if got := PickMIME("image/webp", "image/png", nil); got != "image/webp" {
		t.Errorf("explicit: %q", got)
	}
	if got := PickMIME("", "image/png", nil); got != "image/png" {
		t.Errorf("hint: %q", got)
	}
	if got := PickMIME("", "", nil); got != "image/jpeg" {
		t.Errorf("default: %q", got)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Voici les objets : [{\"label\":\"book\"}] bonne journée", `[{"label":"book"}]`},
		{"[1, [2]]", "[1, [2]]"},
		{"no json here", "no json here"},
	}
	for _, tc := range tests {
		if got := ExtractJSON(tc.in); got != tc.want {
			t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "sub", "ref.jpg")
	if err := WriteFileAtomic(dst, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("two")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(dst)
	if err != nil || string(b) != "two" {
		t.Errorf("got %q %v", b, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(dst))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
