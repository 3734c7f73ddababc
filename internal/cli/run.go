package cli

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/avivsinai/inboxview/internal/export"
	"github.com/avivsinai/inboxview/internal/filter"
	"github.com/avivsinai/inboxview/internal/format"
	"github.com/avivsinai/inboxview/internal/stats"
	"github.com/avivsinai/inboxview/internal/thread"
	"github.com/avivsinai/inboxview/internal/transcript"
)

// pipelineResult is one pass over the export: the selected shard, its merged
// conversation and the filtered view of it.
type pipelineResult struct {
	Root     string
	Shards   []string
	Shard    string
	ShardDir string
	Parts    []string
	Messages []format.Message
	Summary  stats.Summary
}

// execute runs locate, merge, filter and aggregate. It performs no output.
func execute(opts Options, log *zap.Logger) (pipelineResult, error) {
	if !dirExists(opts.Dir) {
		return pipelineResult{}, NotFoundError("export directory not found: %s", opts.Dir)
	}
	root, err := export.Locate(opts.Dir)
	if err != nil {
		return pipelineResult{}, err
	}
	log.Debug("export root", zap.String("root", root))

	shards, err := export.FindShards(root, opts.SearchTerm)
	if err != nil {
		return pipelineResult{}, err
	}
	shard, err := export.SelectShard(shards, opts.Index)
	if err != nil {
		return pipelineResult{}, err
	}
	shardDir := export.ShardDir(root, shard)
	log.Debug("conversation selected",
		zap.Strings("matches", shards),
		zap.Int("index", opts.Index),
		zap.String("shard", shard))

	conv, parts, err := thread.Collect(shardDir)
	if err != nil {
		return pipelineResult{}, err
	}
	log.Debug("message parts merged",
		zap.Int("parts", len(parts)),
		zap.Int("messages", len(conv.Messages)))

	messages := filter.Apply(conv.Messages, opts.Criteria())
	log.Debug("messages filtered",
		zap.Int("before", len(conv.Messages)),
		zap.Int("after", len(messages)),
		zap.Bool("repair_first", opts.RepairFirst))

	return pipelineResult{
		Root:     root,
		Shards:   shards,
		Shard:    shard,
		ShardDir: shardDir,
		Parts:    parts,
		Messages: messages,
		Summary:  stats.Aggregate(format.RepairNames(conv.ParticipantNames()), messages),
	}, nil
}

// present prints the console transcript and, with -save, writes the text file.
func present(opts Options, res pipelineResult, now time.Time, log *zap.Logger) error {
	criteria := opts.Criteria()
	view := transcript.View{
		SearchTerm: opts.SearchTerm,
		Messages:   res.Messages,
		Summary:    res.Summary,
		Shards:     res.Shards,
		Index:      opts.Index,
		Contains:   opts.Contains,
		Limit:      opts.First,
		Highlight: func(sender string) bool {
			return filter.HighlightTarget(sender, criteria)
		},
	}
	console := transcript.Console{
		Styles: transcript.NewStyles(os.Stdout, transcript.ColorEnabled(opts.Color, os.Stdout)),
		Layout: opts.Layout,
		Labels: export.ShardLabels,
	}
	if err := console.Render(os.Stdout, view); err != nil {
		return err
	}
	if !opts.Save {
		return nil
	}
	path, err := transcript.Save(opts.OutDir, opts.SearchTerm, now, transcript.RenderText(view, opts.Layout))
	if err != nil {
		return err
	}
	log.Debug("transcript saved", zap.String("path", path))
	return writeStdout("Saved to %s\n", absPath(path))
}
