package n64tex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const pngExt = ".png"

// isOutput reports whether file looks like a PNG written from a texture
// named by convention, so a second scan doesn't convert it back
func isOutput(file string) bool {
	_, _, _, ok := ParseName(strings.TrimSuffix(file, filepath.Ext(file)))
	return ok
}

func (c *Converter) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) fileWorker(ctx context.Context, in <-chan string, o Options) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			opts := o
			// Every worker would otherwise write to the same file
			opts.PaletteOut = ""

			switch {
			case strings.EqualFold(filepath.Ext(file), pngExt):
				if isOutput(file) {
					c.logger.WithField("input", file).Debug("skipping converted texture")
					continue
				}
			default:
				f, width, height, ok := ParseName(file)
				if !ok {
					continue
				}
				opts.Format, opts.Width, opts.Height = f, width, height
			}

			if err := c.ConvertFile(file, "", opts); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree at path converting every PNG image to
// o.Format and every texture named <name>.<width>x<height>.<format> to PNG,
// using the given number of concurrent workers. o.PaletteOut is ignored,
// set o.WritePalette to keep each TLUT next to its output. The first error
// stops the scan.
func (c *Converter) Scan(path string, o Options, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.fileWorker(ctx, files, o)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
