package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"bic/misc"
	"bic/utils/images"
)

func checkDestination(name string, overwrite bool) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	return nil
}

// writePNG encodes image into temporary file next to destination and renames
// it, so destination is never left partially written.
func writePNG(name string, img image.Image, overwrite bool, log *zap.Logger) (err error) {
	if err := checkDestination(name, overwrite); err != nil {
		return err
	}
	if overwrite {
		if _, err := os.Stat(name); err == nil {
			log.Warn("Overwriting existing file", zap.String("file", name))
		}
	}

	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+misc.GetAppName()+"-*"+outExt)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = images.EncodePNG(f, img); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return fmt.Errorf("unable to set output file permissions: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	if err = os.Rename(f.Name(), name); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}
