package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	in := payload{Name: "store", Count: 7}

	if err := WriteJSONAtomic(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out payload
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !found {
		t.Fatal("expected document to be found")
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestReadMissingFile(t *testing.T) {
	var out payload
	found, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if found {
		t.Error("missing file must report not found")
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	var out payload
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if found {
		t.Error("blank file must report not found")
	}
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	var out payload
	_, err := ReadJSON(path, &out)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := WriteJSONAtomic(path, payload{Name: "x"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.json" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}

func TestExportNameFormat(t *testing.T) {
	ts := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	name := ExportName(ts)
	if !strings.HasPrefix(name, "export_20260828T103000_") {
		t.Errorf("name = %q", name)
	}
	if !strings.HasSuffix(name, ".json") {
		t.Errorf("name = %q", name)
	}
	if name == ExportName(ts) {
		t.Error("two exports at the same instant must not collide")
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteExport(dir, payload{Name: "snap", Count: 1})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var out payload
	found, err := ReadJSON(filepath.Join(dir, name), &out)
	if err != nil || !found {
		t.Fatalf("read back: found=%v err=%v", found, err)
	}
	if out.Name != "snap" {
		t.Errorf("content = %+v", out)
	}
}
