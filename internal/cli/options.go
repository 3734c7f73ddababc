package cli

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/avivsinai/inboxview/internal/config"
	"github.com/avivsinai/inboxview/internal/filter"
	"github.com/avivsinai/inboxview/internal/transcript"
)

// Options is the validated invocation. Flags override the config file.
type Options struct {
	SearchTerm string // required
	Index      int
	First      int

	From      string
	Highlight bool
	Contains  string
	Before    time.Time
	After     time.Time

	RepairFirst bool

	Save   bool
	Dir    string
	OutDir string

	Follow  bool
	Poll    bool
	Timeout time.Duration

	Verbose    bool
	Color      string
	Layout     transcript.Layout
	ConfigPath string
	InitConfig bool
}

// Criteria returns the filter criteria selected by the options.
func (o Options) Criteria() filter.Criteria {
	return filter.Criteria{
		Before:      o.Before,
		After:       o.After,
		Contains:    o.Contains,
		Sender:      o.From,
		Highlight:   o.Highlight,
		RepairFirst: o.RepairFirst,
	}
}

type rawFlags struct {
	to, from, contains string
	before, after      string
	first, index       int
	highlight, save    bool
	dir, out           string
	repairFirst        bool
	follow, poll       bool
	timeout            time.Duration
	configPath         string
	initConfig         bool
	verbose            bool
}

func newFlagSet() (*flag.FlagSet, *rawFlags) {
	fs := flag.NewFlagSet("inboxview", flag.ContinueOnError)
	raw := &rawFlags{}
	fs.StringVar(&raw.to, "to", "", "Search for a conversation by name (required)")
	fs.IntVar(&raw.first, "first", 0, "Show only the first N messages (0 = all)")
	fs.StringVar(&raw.from, "from", "", "Only messages from this sender (or highlight target with -h)")
	fs.BoolVar(&raw.highlight, "h", false, "Highlight -from instead of filtering by it")
	fs.BoolVar(&raw.save, "save", false, "Save the transcript to a text file")
	fs.IntVar(&raw.index, "index", 0, "Pick between multiple matching conversations (zero-based)")
	fs.StringVar(&raw.before, "before", "", "Only messages before this date")
	fs.StringVar(&raw.after, "after", "", "Only messages after this date")
	fs.StringVar(&raw.contains, "contains", "", "Only messages containing this text (case-insensitive)")
	fs.StringVar(&raw.dir, "dir", "", "Directory holding the export (default: config root or current directory)")
	fs.StringVar(&raw.out, "out", "", "Directory for -save files (default: config output_dir or current directory)")
	fs.BoolVar(&raw.repairFirst, "repair-first", false, "Fix text encoding before matching -contains")
	fs.BoolVar(&raw.follow, "follow", false, "Re-render when the conversation's message files change")
	fs.BoolVar(&raw.poll, "poll", false, "Use polling instead of fsnotify for -follow")
	fs.DurationVar(&raw.timeout, "timeout", 0, "Stop -follow after this long (0 = until interrupted)")
	fs.StringVar(&raw.configPath, "config", "", "Config file (default: $INBOXVIEW_CONFIG or .inboxview.yaml)")
	fs.BoolVar(&raw.initConfig, "init-config", false, "Write a default config file and exit")
	fs.BoolVar(&raw.verbose, "verbose", false, "Debug logging to stderr")
	return fs, raw
}

// parseOptions parses args, loads the config file and validates the result.
// handled is true when -help was requested and usage has been printed.
func parseOptions(args []string) (opts Options, handled bool, err error) {
	fs, raw := newFlagSet()
	usage := usageWithFlags(fs, "inboxview -to <name> [options]",
		"Reads a chat export (directories containing \"inbox\") and prints one conversation.",
		"Dates accept 2006-01-02, RFC 3339, 2006-01-02 15:04, 01/02/2006 and Jan 2, 2006.",
	)
	if handled, err := parseFlags(fs, args, usage); err != nil || handled {
		return Options{}, handled, err
	}
	if fs.NArg() > 0 {
		return Options{}, false, UsageError("unexpected argument: %s", fs.Arg(0))
	}

	opts.ConfigPath = config.Path(raw.configPath)
	opts.InitConfig = raw.initConfig
	if opts.InitConfig {
		return opts, false, nil
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return Options{}, false, err
	}

	opts.SearchTerm = raw.to
	if strings.TrimSpace(opts.SearchTerm) == "" {
		return Options{}, false, UsageError("-to is required (run with -help for usage)")
	}
	if raw.first < 0 {
		return Options{}, false, UsageError("-first must be >= 0")
	}
	if raw.index < 0 {
		return Options{}, false, UsageError("-index must be >= 0")
	}
	if raw.timeout < 0 {
		return Options{}, false, UsageError("-timeout must be >= 0")
	}
	opts.First = raw.first
	opts.Index = raw.index

	if raw.before != "" {
		if opts.Before, err = parseDate(raw.before); err != nil {
			return Options{}, false, UsageError("-before: %v", err)
		}
	}
	if raw.after != "" {
		if opts.After, err = parseDate(raw.after); err != nil {
			return Options{}, false, UsageError("-after: %v", err)
		}
	}

	opts.From = raw.from
	opts.Highlight = raw.highlight
	opts.Contains = raw.contains
	opts.RepairFirst = raw.repairFirst || cfg.RepairBeforeFilter
	opts.Save = raw.save
	opts.Dir = firstNonEmpty(raw.dir, cfg.Root, ".")
	opts.OutDir = firstNonEmpty(raw.out, cfg.OutputDir, ".")
	opts.Follow = raw.follow
	opts.Poll = raw.poll
	opts.Timeout = raw.timeout
	opts.Verbose = raw.verbose || cfg.Verbose
	opts.Color = cfg.Color
	opts.Layout = transcript.Layout{Date: cfg.DateLayout, Time: cfg.TimeLayout, Location: time.Local}
	return opts, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// dateOnlyLayout is read as UTC midnight, the way browsers and Node read
// ISO date-only strings. Every other layout without a zone is local time.
const dateOnlyLayout = "2006-01-02"

var localDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006",
	"1/2/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"January 2 2006",
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
