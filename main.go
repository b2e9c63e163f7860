package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ComedicChimera/olive"

	"sabaka/pkg/config"
	"sabaka/pkg/report"
)

// Version is the sabaka front end release.
const Version = "0.3.0"

// exit codes
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitRuntime = 3
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := olive.NewCLI("sabaka", "sabaka checks programs written in the sabaka language", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "info", "debug"})
	cli.AddStringArg("config", "c", "path to a .toml or .yaml config file", false)

	checkCmd := cli.AddSubcommand("check", "lex, parse and type check source files", true)
	checkCmd.AddPrimaryArg("path", "a .sb file or a directory of them", true)

	cli.AddSubcommand("version", "print the sabaka version", false)

	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.Failure(stderr, "CLI Usage Error", err)
		return exitUsage
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "version":
		report.Info(stdout, "sabaka version", Version)
		return exitOK
	case "check":
		cfg, err := loadConfig(result)
		if err != nil {
			report.Failure(stderr, "Config Error", err)
			return exitUsage
		}
		level, err := cfg.Level()
		if err != nil {
			report.Failure(stderr, "Config Error", err)
			return exitUsage
		}

		path, _ := subResult.PrimaryArg()
		logger := report.NewLogger(level, stderr)
		results, err := checkPaths(context.Background(), []string{path}, cfg, logger)
		if err != nil {
			report.Failure(stderr, "Load Error", err)
			return exitRuntime
		}
		if printResults(stdout, results) > 0 {
			return exitFailed
		}
		return exitOK
	}

	fmt.Fprintln(stderr, "no command given; try `sabaka check <path>` or `sabaka version`")
	return exitUsage
}

// loadConfig reads the --config file, or sabaka.toml from the working
// directory, and applies --loglevel on top.
func loadConfig(result *olive.ArgParseResult) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, ok := result.Arguments["config"]; ok {
		cfg, err = config.Load(path.(string))
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, err
		}
		cfg, err = config.Find(wd)
	}
	if err != nil {
		return nil, err
	}

	if lvl, ok := result.Arguments["loglevel"]; ok {
		cfg.LogLevel = lvl.(string)
	}
	return cfg, nil
}
