package dumper

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
)

const gzipSuffix = ".gz"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExtractFile runs Extract from the dump at inputPath into outputPath, which is overwritten.
// Paths ending in .gz are transparently decompressed or compressed.
func ExtractFile(inputPath, outputPath string, options Options) (Result, error) {
	source, err := OpenInput(inputPath)
	if err != nil {
		return Result{}, err
	}
	defer source.Close()

	destination, err := CreateOutput(outputPath)
	if err != nil {
		return Result{}, err
	}

	result, err := Extract(source, destination, options)
	if err != nil {
		destination.Close()
		return result, err
	}
	if err := destination.Close(); err != nil {
		return result, fmt.Errorf("failed to close %s: %w", outputPath, err)
	}
	return result, nil
}

// OpenInput opens a dump for reading
func OpenInput(src string) (io.ReadCloser, error) {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !sourceFileStat.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(src, gzipSuffix) {
		return source, nil
	}
	gzipReader, err := gzip.NewReader(source)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to read gzip header of %s: %w", src, err)
	}
	return &gzipReadCloser{Reader: gzipReader, file: source}, nil
}

// CreateOutput creates the file, and its folder, for an extract
func CreateOutput(dst string) (io.WriteCloser, error) {
	destination, err := create(dst)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(dst, gzipSuffix) {
		return destination, nil
	}
	return &gzipWriteCloser{Writer: gzip.NewWriter(destination), file: destination}, nil
}

// WriteStats stores the result of an extraction as JSON
func WriteStats(dst string, result Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	destination, err := create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()
	_, err = destination.Write(append(data, '\n'))
	return err
}

func create(p string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0770); err != nil {
		return nil, err
	}
	return os.Create(p)
}

type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (r *gzipReadCloser) Close() error {
	err := r.Reader.Close()
	if fileErr := r.file.Close(); err == nil {
		err = fileErr
	}
	return err
}

type gzipWriteCloser struct {
	*gzip.Writer
	file *os.File
}

func (w *gzipWriteCloser) Close() error {
	err := w.Writer.Close()
	if fileErr := w.file.Close(); err == nil {
		err = fileErr
	}
	return err
}
