package deck

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// collectionName is the collection entry inside a package.
const collectionName = "collection.anki2"

// Write packages d as an .apkg file at path. The file is written to a
// temporary name first and renamed into place on success.
func Write(ctx context.Context, path string, d *Deck) error {
	dir, err := os.MkdirTemp("", "qbdeck-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	colPath := filepath.Join(dir, collectionName)
	if err := writeCollection(ctx, colPath, d); err != nil {
		return err
	}

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := writeZip(tmp, colPath); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize package: %w", err)
	}
	return nil
}

func writeZip(path, colPath string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	col, err := os.Open(colPath)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}
	defer col.Close()

	w, err := zw.Create(collectionName)
	if err != nil {
		return fmt.Errorf("add collection: %w", err)
	}
	if _, err := io.Copy(w, col); err != nil {
		return fmt.Errorf("add collection: %w", err)
	}

	// No media files; Anki still expects the manifest.
	w, err = zw.Create("media")
	if err != nil {
		return fmt.Errorf("add media manifest: %w", err)
	}
	if _, err := io.WriteString(w, "{}"); err != nil {
		return fmt.Errorf("add media manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	return f.Close()
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
