package index

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	f := buildTestIndex(t, [][]float32{
		{0.5, -1.25, 3},
		{1, 2, 3},
	})

	path := filepath.Join(t.TempDir(), "wikiart_index.bin")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Dim() != 3 {
		t.Errorf("Dim() = %d, want 3", loaded.Dim())
	}
	if loaded.Len() != 2 {
		t.Errorf("Len() = %d, want 2", loaded.Len())
	}

	// Positional alignment across save/load: self-search still resolves
	// to the same position at distance 0.
	hits, err := loaded.Search([]float32{0.5, -1.25, 3}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hits[0].Position != 0 || hits[0].Distance != 0 {
		t.Errorf("hit = %+v, want position 0 at distance 0", hits[0])
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.bin")
	if err := os.WriteFile(path, []byte("not an index at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	f := buildTestIndex(t, [][]float32{{1, 2, 3}, {4, 5, 6}})
	path := filepath.Join(t.TempDir(), "index.bin")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-4], 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for truncated file")
	}
}

func TestLoadRejectsInflatedCount(t *testing.T) {
	f := buildTestIndex(t, [][]float32{{1, 2, 3}})
	path := filepath.Join(t.TempDir(), "index.bin")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Corrupt the count field (header offset 12) to claim far more
	// vectors than the file holds. Load must fail on the missing data
	// rather than trust the header.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[12], data[13], data[14], data[15] = 0xff, 0xff, 0xff, 0x7f
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for inflated vector count")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.bin")

	if Exists(path) {
		t.Error("Exists should be false before save")
	}

	f := buildTestIndex(t, [][]float32{{1}})
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(path) {
		t.Error("Exists should be true after save")
	}
	if Exists(dir) {
		t.Error("Exists should be false for a directory")
	}
}
