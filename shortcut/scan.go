package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"go.uber.org/zap"

	"github.com/andrewstucki/shortcut"
	"github.com/andrewstucki/shortcut/lnk"
)

type file struct {
	Name string
	Info *shortcut.Info
	Err  error
}

type scanner struct {
	workers int
	log     *zap.Logger
	opts    []lnk.Option
}

// collect expands directories into the regular, non-empty files below them.
// Explicitly named files are always kept.
func collect(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		stat, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Errorf("file '%s' not found", path)
			}
			return nil, errors.Wrap(err, 0)
		}
		if !stat.IsDir() {
			files = append(files, path)
			continue
		}
		if err := filepath.WalkDir(path, func(name string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if info.Size() > 0 {
				files = append(files, name)
			}
			return nil
		}); err != nil {
			return nil, errors.Wrap(err, 0)
		}
	}
	return files, nil
}

// scan decodes every file on the worker pool. Results keep the order of names.
func (s *scanner) scan(ctx context.Context, names []string) ([]file, error) {
	files := make([]file, len(names))

	p := newPool(s.workers)
	defer p.Release()
	for i, name := range names {
		i, name := i, name
		if err := p.Enqueue(ctx, func() {
			files[i] = s.decode(name)
		}); err != nil {
			p.Wait()
			return nil, err
		}
	}
	p.Wait()
	return files, nil
}

func (s *scanner) decode(name string) file {
	result := file{Name: name}

	f, err := os.Open(name)
	if err != nil {
		result.Err = errors.Wrap(err, 0)
		return result
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		result.Err = errors.Wrap(err, 0)
		return result
	}

	log := s.log.With(zap.String("file", name))
	opts := append([]lnk.Option{lnk.WithLogger(log)}, s.opts...)
	result.Info, result.Err = shortcut.Parse(f, int(stat.Size()), opts...)
	return result
}
