// pattern: Imperative Shell
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"prj/internal/cli"
	"prj/internal/config"
	"prj/internal/logging"
)

var version = "dev"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configPath := flag.StringP("config", "c", "", "config file (default: "+config.ConfigPath()+")")
	showVersion := flag.BoolP("version", "V", false, "print version and exit")
	verbose := flag.BoolP("verbose", "v", false, "echo log entries to stderr")

	flag.Usage = func() {
		cli.BuildApp(version, &cli.Env{Stderr: os.Stderr}).PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	os.Exit(run(*configPath, *verbose, flag.Args()))
}

// run executes one command and returns the process exit code.
func run(configPath string, verbose bool, args []string) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   cfg.LogPath(),
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
		EchoBuffer: 256,
		Level:      cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}

	// The TUIs draw on stderr, so log echo is limited to line-oriented commands.
	var forwarded <-chan struct{}
	if verbose && !interactive(args) {
		forwarded = logging.Forward(logManager.Entries(), os.Stderr, "")
	}
	defer func() {
		_ = logManager.Close()
		if forwarded != nil {
			<-forwarded
		}
	}()

	logger := logManager.For("app")
	logger.Debug("starting", "version", version, "args", args)

	env := cli.NewEnv(cfg, logManager)
	app := cli.BuildApp(version, env)

	pick, err := app.Execute(args)
	if err == nil && pick {
		err = env.Pick()
	}
	if err != nil {
		logger.Error("command failed", "args", args, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config from configPath or the default location.
func loadConfig(configPath string) (config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// interactive reports whether args may start a full-screen UI.
func interactive(args []string) bool {
	return len(args) == 0 || args[0] == "list"
}
