// Package export implements command line actions producing composite icons.
package export

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bic/common"
	"bic/state"
)

// Run is "compose" command action.
func Run(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, "compose", false)
}

// Preview is "preview" command action, it always renders small image.
func Preview(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, "preview", true)
}

func run(ctx context.Context, cmd *cli.Command, name string, preview bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(name)

	req, err := requestFromCommand(cmd, env, preview)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	log.Info("Processing starting",
		zap.String("main", req.Main), zap.String("badge", req.Badge), zap.Stringer("position", req.Position),
		zap.Int("resolution", req.resolution()), zap.Int("size", req.Size))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return Process(ctx, req, log)
}

// requestFromCommand merges command line with configuration defaults.
func requestFromCommand(cmd *cli.Command, env *state.LocalEnv, preview bool) (*Request, error) {
	cfg := &env.Cfg.Composition

	req := &Request{
		Resolution: cfg.Resolution,
		Size:       cfg.BadgeSize,
		Position:   cfg.Position,
		Preview:    preview,
		Overwrite:  env.Cfg.Output.Overwrite,
	}

	var err error
	if main := cmd.Args().Get(0); main != "" {
		if req.Main, err = filepath.Abs(main); err != nil {
			return nil, err
		}
	}
	if badge := cmd.Args().Get(1); badge != "" {
		if req.Badge, err = filepath.Abs(badge); err != nil {
			return nil, err
		}
	}
	if out := cmd.String("output"); out != "" {
		if req.Output, err = filepath.Abs(out); err != nil {
			return nil, err
		}
	}

	if cmd.IsSet("resolution") {
		req.Resolution = cmd.Int("resolution")
	}
	if cmd.IsSet("size") {
		req.Size = cmd.Int("size")
	}
	if pos := cmd.String("position"); pos != "" {
		if req.Position, err = common.ParsePosition(pos); err != nil {
			return nil, fmt.Errorf("unable to use badge position: %w", err)
		}
	}
	if cmd.Bool("overwrite") {
		req.Overwrite = true
	}
	req.Flatten = preview && cmd.Bool("flatten")

	env.Overwrite, env.Flatten = req.Overwrite, req.Flatten
	return req, nil
}

// Theme is "theme" command action: without arguments it prints current theme,
// otherwise stores new one.
func Theme(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("prefs")

	p, err := env.OpenPrefs()
	if err != nil {
		return err
	}

	if cmd.Args().Len() == 0 {
		theme, err := p.Theme()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.Root().Writer, theme)
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	theme, err := common.ParseTheme(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("unable to select theme (one of %v): %w", common.ThemeNames(), err)
	}
	if err := p.SetTheme(theme); err != nil {
		return err
	}
	log.Info("Theme selected", zap.Stringer("theme", theme))
	return nil
}
