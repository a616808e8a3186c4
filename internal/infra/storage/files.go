package storage

import (
	"os"
	"path/filepath"
)

// Dir is a flat directory of quotation PDFs, one <quotationNo>.pdf per record.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Root() string { return d.root }

func (d *Dir) fileName(number string) string {
	return filepath.Join(d.root, number+".pdf")
}

// Save writes the PDF via a temp file and rename, so a crashed write never
// leaves a truncated document behind.
func (d *Dir) Save(number string, data []byte) (string, error) {
	dst := d.fileName(number)

	tmp, err := os.CreateTemp(d.root, number+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return dst, nil
}

// Path returns the stored PDF location for a number, if the file exists.
func (d *Dir) Path(number string) (string, bool) {
	p := d.fileName(number)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}
