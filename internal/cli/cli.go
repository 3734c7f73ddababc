package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/avivsinai/inboxview/internal/config"
)

// Run parses args and renders one conversation. The returned error carries
// an exit code; see GetExitCode.
func Run(args []string) error {
	opts, handled, err := parseOptions(args)
	if err != nil || handled {
		return err
	}
	if opts.InitConfig {
		if err := config.WriteConfig(opts.ConfigPath, config.Default()); err != nil {
			return err
		}
		return writeStdout("Wrote %s\n", opts.ConfigPath)
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	res, err := execute(opts, log)
	if err != nil {
		return pipelineExit(err)
	}
	if err := present(opts, res, time.Now(), log); err != nil {
		return err
	}
	if !opts.Follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	rerun := func() error {
		next, err := execute(opts, log)
		if err != nil {
			return writeStderr("warning: %v\n", err)
		}
		if err := writeStdoutLine(""); err != nil {
			return err
		}
		return present(opts, next, time.Now(), log)
	}

	log.Debug("following conversation", zap.String("dir", res.ShardDir), zap.Bool("poll", opts.Poll))
	err = followShard(ctx, res.ShardDir, opts.Poll, log, rerun)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return TimeoutError("follow timed out")
	case errors.Is(err, context.Canceled):
		return nil
	}
	return err
}
