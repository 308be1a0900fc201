package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Open opens path for reading, transparently decoding gzip input when
// the file name ends in ".gz". Concatenated gzip members are decoded
// as one stream. Closing the returned ReadCloser closes the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) != ".gz" {
		return f, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &gzipFile{gz: gz, file: f}, nil
}

// gzipFile couples a gzip decoder with the file it reads from so a
// single Close releases both.
type gzipFile struct {
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipFile) Close() error {
	gzErr := g.gz.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}
