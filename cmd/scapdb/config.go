package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/quay/scapdb/builder"
	"github.com/quay/scapdb/datastream"
	"github.com/quay/scapdb/xccdf"
)

// Config is the merged result of the config file and the command line.
type config struct {
	Root        string `toml:"root"`
	Output      string `toml:"output"`
	Workers     int    `toml:"workers"`
	SkipInvalid bool   `toml:"skip_invalid"`
	Validate    bool   `toml:"validate"`
	Metrics     string `toml:"metrics"`
	Verbose     bool   `toml:"verbose"`

	ContentPrefix string `toml:"content_prefix"`
	FilePrefix    string `toml:"file_prefix"`
	FileSuffix    string `toml:"file_suffix"`
	ValuePrefix   string `toml:"value_prefix"`
}

func defaultConfig() config {
	return config{
		Root:          builder.DefaultRoot,
		Output:        "scap_database.json",
		Workers:       1,
		ContentPrefix: datastream.DefaultContentPrefix,
		FilePrefix:    datastream.DefaultFilePrefix,
		FileSuffix:    datastream.DefaultFileSuffix,
		ValuePrefix:   xccdf.DefaultValuePrefix,
	}
}

// ErrUsage is returned by parseConfig when the arguments could not be parsed.
// The flag package has already reported the problem.
var errUsage = errors.New("usage")

// ParseConfig parses the command line in args, layering it over the TOML file
// named by "-config", if any. Flags given explicitly win over file values.
func parseConfig(name string, args []string, out io.Writer) (*config, error) {
	var cfg config
	def := defaultConfig()
	var file string
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s: [flags] [root]\n", name)
		fs.PrintDefaults()
	}
	fs.StringVar(&file, "config", "", "TOML `file` with default settings")
	fs.StringVar(&cfg.Root, "root", def.Root, "SCAP content `directory` to scan")
	fs.StringVar(&cfg.Output, "o", def.Output, "output `file`; \"-\" for stdout, .gz/.zst/.xz are compressed")
	fs.IntVar(&cfg.Workers, "j", def.Workers, "number of datastreams to extract concurrently")
	fs.BoolVar(&cfg.SkipInvalid, "skip-invalid", def.SkipInvalid, "skip malformed datastreams instead of failing")
	fs.BoolVar(&cfg.Validate, "validate", def.Validate, "validate the output against the database schema")
	fs.StringVar(&cfg.Metrics, "metrics", def.Metrics, "write prometheus metrics to `file` on exit")
	fs.BoolVar(&cfg.Verbose, "v", def.Verbose, "debug logging")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errUsage
	}
	switch fs.NArg() {
	case 0:
	case 1:
		if err := fs.Set("root", fs.Arg(0)); err != nil {
			return nil, err
		}
	default:
		fs.Usage()
		return nil, errUsage
	}

	merged := def
	if file != "" {
		md, err := toml.DecodeFile(file, &merged)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %q: %w", file, err)
		}
		if u := md.Undecoded(); len(u) != 0 {
			return nil, fmt.Errorf("unknown keys in config %q: %v", file, u)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			merged.Root = cfg.Root
		case "o":
			merged.Output = cfg.Output
		case "j":
			merged.Workers = cfg.Workers
		case "skip-invalid":
			merged.SkipInvalid = cfg.SkipInvalid
		case "validate":
			merged.Validate = cfg.Validate
		case "metrics":
			merged.Metrics = cfg.Metrics
		case "v":
			merged.Verbose = cfg.Verbose
		}
	})
	return &merged, nil
}

// BuilderOptions returns the library configuration described by c.
func (c *config) builderOptions() *builder.Options {
	return &builder.Options{
		Workers:     c.Workers,
		SkipInvalid: c.SkipInvalid,
		Discovery: &datastream.Options{
			ContentPrefix: c.ContentPrefix,
			FilePrefix:    c.FilePrefix,
			FileSuffix:    c.FileSuffix,
		},
		Parse: &xccdf.Opts{
			ValuePrefix: c.ValuePrefix,
		},
	}
}
