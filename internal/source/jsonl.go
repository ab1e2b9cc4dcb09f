package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// ReadJSONLDir reads the four JSONL files from dir.
func ReadJSONLDir(dir string) (types.Sources, error) {
	var src types.Sources
	var err error
	if src.Providers, err = readJSONL[types.Provider](filepath.Join(dir, ProvidersJSONL)); err != nil {
		return types.Sources{}, err
	}
	if src.Receivers, err = readJSONL[types.Receiver](filepath.Join(dir, ReceiversJSONL)); err != nil {
		return types.Sources{}, err
	}
	if src.Listings, err = readJSONL[types.FoodListing](filepath.Join(dir, ListingsJSONL)); err != nil {
		return types.Sources{}, err
	}
	if src.Claims, err = readJSONL[types.Claim](filepath.Join(dir, ClaimsJSONL)); err != nil {
		return types.Sources{}, err
	}
	return src, nil
}

// WriteJSONLDir writes src as four JSONL files in dir, creating dir if
// needed. Each file is replaced atomically.
func WriteJSONLDir(dir string, src types.Sources) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := writeJSONL(filepath.Join(dir, ProvidersJSONL), src.Providers); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, ReceiversJSONL), src.Receivers); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, ListingsJSONL), src.Listings); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(dir, ClaimsJSONL), src.Claims)
}

// readJSONL decodes one record per non-blank line. Unknown fields are
// ignored; a malformed line fails the whole read.
func readJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	out := []T{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, recordErr(name, line, err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, nil
}

// writeJSONL atomically writes records to path using the temp-file, fsync,
// rename pattern.
func writeJSONL[T any](path string, records []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		// Encode terminates each record with a newline.
		if err := enc.Encode(rec); err != nil {
			return fail(fmt.Errorf("writing record to %s: %w", filepath.Base(path), err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
