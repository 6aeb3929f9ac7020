package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `title,artist,year,style,genre,description
Mona Lisa,Leonardo da Vinci,1503,Renaissance,Portrait,A painting of Mona Lisa
"Nighthawks, at the Diner",Edward Hopper,1942,American Realism,Genre painting,"Late-night diner scene, seen through glass"
The Starry Night,Vincent van Gogh,1889,Post-Impressionism,Landscape,"A swirling night sky over a village"
`

func TestReadParsesRowsInOrder(t *testing.T) {
	c, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	first, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if first.Title != "Mona Lisa" || first.Artist != "Leonardo da Vinci" || first.Year != "1503" {
		t.Errorf("unexpected first record: %+v", first)
	}
}

// Quoted fields with embedded commas must survive parsing intact.
func TestReadQuotedFields(t *testing.T) {
	c, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	a, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if a.Title != "Nighthawks, at the Diner" {
		t.Errorf("Title = %q, want comma preserved", a.Title)
	}
	if a.Description != "Late-night diner scene, seen through glass" {
		t.Errorf("Description = %q, want comma preserved", a.Description)
	}
}

func TestReadRejectsWrongHeader(t *testing.T) {
	_, err := Read(strings.NewReader("name,artist,year,style,genre,description\n"))
	if err == nil {
		t.Fatal("expected error for wrong header")
	}
}

func TestReadRejectsShortRow(t *testing.T) {
	_, err := Read(strings.NewReader("title,artist,year,style,genre,description\nonly,two\n"))
	if err == nil {
		t.Fatal("expected error for row with wrong field count")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrMetadataNotFound) {
		t.Fatalf("err = %v, want ErrMetadataNotFound", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikiart_metadata.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestGetOutOfRange(t *testing.T) {
	c := New([]Artwork{{Title: "one"}})
	if _, err := c.Get(1); err == nil {
		t.Error("Get(1) on 1-element catalog should fail")
	}
	if _, err := c.Get(-1); err == nil {
		t.Error("Get(-1) should fail")
	}
}
