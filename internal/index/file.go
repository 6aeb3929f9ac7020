package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// Artifact layout: a fixed header followed by count*dim little-endian
// float32 values in insertion order. The header carries enough metadata
// to validate compatibility on reload.
const (
	fileMagic   = "WAIX"
	fileVersion = uint32(1)
)

type fileHeader struct {
	Magic   [4]byte
	Version uint32
	Dim     uint32
	Count   uint32
}

// Save writes the index to path. The artifact is written to a temp file
// and renamed into place so a crash never leaves a truncated index.
func (f *Flat) Save(path string) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}

	w := bufio.NewWriter(file)
	hdr := fileHeader{Version: fileVersion, Dim: uint32(f.dim), Count: uint32(len(f.vectors))}
	copy(hdr.Magic[:], fileMagic)

	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing index header: %w", err)
	}
	for _, vec := range f.vectors {
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			file.Close()
			os.Remove(tmp)
			return fmt.Errorf("writing vectors: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("flushing index file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming index file: %w", err)
	}
	return nil
}

// Load reads a persisted index from path, validating the header.
func Load(path string) (*Flat, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	if string(hdr.Magic[:]) != fileMagic {
		return nil, fmt.Errorf("not an index file: bad magic %q", hdr.Magic)
	}
	if hdr.Version != fileVersion {
		return nil, fmt.Errorf("unsupported index version %d", hdr.Version)
	}
	if hdr.Dim == 0 {
		return nil, fmt.Errorf("invalid dimension 0 in index header")
	}

	// The count comes from an untrusted file; cap the preallocation so a
	// corrupt header cannot force a huge up-front allocation. The slice
	// still grows to the real count as vectors are read.
	capHint := hdr.Count
	if capHint > 4096 {
		capHint = 4096
	}

	f := &Flat{dim: int(hdr.Dim)}
	f.vectors = make([][]float32, 0, capHint)
	for i := uint32(0); i < hdr.Count; i++ {
		vec := make([]float32, hdr.Dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("reading vector %d: %w", i, err)
		}
		f.vectors = append(f.vectors, vec)
	}

	// Trailing data means the header lied about the count.
	if _, err := r.ReadByte(); err == nil {
		return nil, fmt.Errorf("index file has trailing data beyond %d vectors", hdr.Count)
	}

	return f, nil
}

// Exists reports whether an index artifact is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
