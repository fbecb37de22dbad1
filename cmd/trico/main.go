// Command trico converts STL meshes to and from trico archives.
//
// Usage:
//
//	trico encode [-config file.yaml] [-codec lz4|zstd|snappy] [-double] in.stl out.trc
//	trico decode [-config file.yaml] [-codec name] in.trc out.stl
//	trico inspect [-codec name] in.trc
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var errUsage = errors.New("usage: trico encode|decode|inspect [flags] args")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "trico:", err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// command holds the settings shared by all subcommands.
type command struct {
	cfg    fileConfig
	logger *slog.Logger
	stdout io.Writer
	args   []string
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	name, args := args[0], args[1:]

	var (
		configPath  string
		codec       string
		concurrency int
		double      bool
		verbose     bool
	)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.StringVar(&codec, "codec", "", "byte codec: lz4, zstd or snappy (default lz4)")
	fs.IntVar(&concurrency, "concurrency", 0, "planes coded in parallel (default from config, 1)")
	fs.BoolVar(&double, "double", false, "store vertices and normals as float64 (encode only)")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	// Flags override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "codec":
			cfg.Codec = codec
		case "concurrency":
			cfg.Concurrency = concurrency
		case "double":
			cfg.Double = double
		case "v":
			if verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.validate(); err != nil {
		return err
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	c := &command{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		stdout: stdout,
		args:   fs.Args(),
	}
	switch name {
	case "encode":
		return c.encode()
	case "decode":
		return c.decode()
	case "inspect":
		return c.inspect()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (c *command) want(n int, names string) error {
	if len(c.args) != n {
		return fmt.Errorf("%w: expected %s", errUsage, names)
	}
	return nil
}
