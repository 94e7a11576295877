package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bic/composite"
	"bic/state"
	"bic/utils/images"
)

// Process produces composite image(s) described by request. When main is a
// directory every image in it is composed with the same badge.
func Process(ctx context.Context, req *Request, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	if err := req.validate(env.Cfg.Composition.MaxResolution); err != nil {
		return err
	}
	if req.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("unable to generate request id: %w", err)
		}
		req.ID = id
	}
	log = log.With(zap.Stringer("request", req.ID))

	comp, err := composite.New(composite.MaskOptions{
		Grow: env.Cfg.Composition.Mask.Grow,
		Blur: env.Cfg.Composition.Mask.Blur,
	}, log)
	if err != nil {
		return fmt.Errorf("unable to prepare compositor: %w", err)
	}

	fi, err := os.Stat(req.Main)
	if err != nil {
		return fmt.Errorf("unable to access main image: %w", err)
	}

	badge, err := loadBadge(ctx, req, log)
	if err != nil {
		return err
	}

	if fi.IsDir() {
		return processDir(ctx, comp, req, badge, log)
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to get working directory: %w", err)
	}
	return processFile(ctx, comp, req, req.Main, buildOutputPath(req, req.Main, dir, false, env), badge, log)
}

func loadBadge(ctx context.Context, req *Request, log *zap.Logger) (image.Image, error) {
	if req.Badge == "" {
		log.Debug("No badge selected, main image will be resized only")
		return nil, nil
	}

	env := state.EnvFromContext(ctx)

	badge, kind, err := images.Load(req.Badge, env.Cfg.Composition.SVGSize)
	if err != nil {
		return nil, fmt.Errorf("unable to load badge: %w", err)
	}
	if !images.HasTransparency(badge) {
		log.Warn("Badge has no transparent pixels, cutout will be rectangular", zap.String("badge", req.Badge))
	}
	env.Rpt.Store(fmt.Sprintf("input-%s-badge.%s", req.ID, kind), req.Badge)
	log.Debug("Badge loaded", zap.String("file", req.Badge), zap.String("type", kind), zap.Stringer("size", badge.Bounds().Size()))
	return badge, nil
}

// processDir composes all images found directly in directory, in natural
// order. Files which are not images are skipped, failures are collected and
// processing continues.
func processDir(ctx context.Context, comp *composite.Compositor, req *Request, badge image.Image, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	entries, err := os.ReadDir(req.Main)
	if err != nil {
		return fmt.Errorf("unable to read directory: %w", err)
	}

	dst := req.Output
	if dst == "" {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	inPlace := sameFile(dst, req.Main)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(req.Main, e.Name())
		if req.Badge != "" && sameFile(path, req.Badge) {
			log.Debug("Skipping badge", zap.String("file", path))
			continue
		}
		if inPlace && env.Cfg.Output.NameTemplate == "" && isBatchResult(e.Name()) {
			log.Debug("Skipping result of previous run", zap.String("file", path))
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(natural.StringSlice(names))

	count := 0
	defer func() {
		if count == 0 {
			log.Warn("Nothing to process", zap.String("dir", req.Main))
		}
	}()

	var errs error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		path := filepath.Join(req.Main, name)
		if err := processFile(ctx, comp, req, path, buildOutputPath(req, path, dst, true, env), badge, log); err != nil {
			if errors.Is(err, images.ErrUnsupported) {
				log.Debug("Skipping file, not recognized as image", zap.String("file", path))
				continue
			}
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
		count++
	}
	return errs
}

// processFile composes single main image and writes result to "out".
func processFile(ctx context.Context, comp *composite.Compositor, req *Request, main, out string, badge image.Image, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	log.Info("Composition starting", zap.String("from", main))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Composition ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", out), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("composition panic: %v", r)
		} else if rerr == nil {
			log.Info("Composition completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", out))
		}
	}(time.Now())

	if err := checkDestination(out, req.Overwrite); err != nil {
		return err
	}

	img, kind, err := images.Load(main, env.Cfg.Composition.SVGSize)
	if err != nil {
		return err
	}
	log.Debug("Main image loaded", zap.String("type", kind), zap.Stringer("size", img.Bounds().Size()))
	env.Rpt.Store(fmt.Sprintf("input-%s-%s", req.ID, filepath.Base(main)), main)

	var res *image.RGBA
	if req.Preview {
		res, err = comp.Preview(img, badge, req.params())
	} else {
		res, err = comp.Compose(img, badge, req.params())
	}
	if err != nil {
		return fmt.Errorf("unable to compose image: %w", err)
	}

	if req.Flatten {
		if res, err = flatten(ctx, res, log); err != nil {
			return err
		}
	}

	if err := writePNG(out, res, req.Overwrite, log); err != nil {
		return err
	}
	env.Rpt.Store(fmt.Sprintf("result-%s-%s", req.ID, filepath.Base(out)), out)
	return nil
}

func flatten(ctx context.Context, img *image.RGBA, log *zap.Logger) (*image.RGBA, error) {
	env := state.EnvFromContext(ctx)

	p, err := env.OpenPrefs()
	if err != nil {
		return nil, fmt.Errorf("unable to flatten preview: %w", err)
	}
	theme, err := p.Theme()
	if err != nil {
		return nil, fmt.Errorf("unable to flatten preview: %w", err)
	}
	log.Debug("Flattening on theme background", zap.Stringer("theme", theme))
	return images.Flatten(img, Background(theme)), nil
}

func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}
