// Package main provides the devconsole CLI: an interactive console shell and
// a batch runner on top of the console registry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devconsole/internal/config"
	"devconsole/internal/console"
	"devconsole/internal/logger"
	"devconsole/internal/output"
	"devconsole/internal/shell"
	"devconsole/internal/testutils"
	"devconsole/internal/version"
)

var (
	configFile string
	v          = viper.New()
	cfg        *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devconsole",
	Short: "devconsole - in-process command console",
	Long: `devconsole hosts a command console: typed commands and settings, parsed from
single text lines and executed on one owning main loop.`,
	Run: runShell, // Default behavior is to run the interactive shell
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Run:   runShell,
}

// batchCmd executes a file of console lines without entering interactive mode
var batchCmd = &cobra.Command{
	Use:   "batch <script>",
	Short: "Execute a file of console lines in batch mode",
	Long: `Execute every line of a file as if it had been typed into the console.
Blank lines and lines starting with # are skipped.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetDetailedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./devconsole.yaml)")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.String("name", "", "Console name used as the log prefix")
	flags.Int("history-limit", 0, "Maximum number of history lines kept (0 = config default)")
	flags.Int("queue-capacity", 0, "Maximum number of pending commands (0 = unbounded)")
	flags.Duration("tick", 0, "Interval between queue drains in interactive mode")
	flags.String("output", "", "Output mode (auto|styled|plain|json) [default: auto]")
	flags.Bool("quiet", false, "Suppress command output")

	bindings := map[string]string{
		config.KeyLogLevel:      "log-level",
		config.KeyLogFile:       "log-file",
		config.KeyTestMode:      "test-mode",
		config.KeyName:          "name",
		config.KeyHistoryLimit:  "history-limit",
		config.KeyQueueCapacity: "queue-capacity",
		config.KeyTickInterval:  "tick",
		config.KeyOutput:        "output",
		config.KeyQuiet:         "quiet",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.LoadDotEnv("."); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	loaded, err := config.Load(v, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// newConsole builds the registry described by c, with natives registered and
// startup setting values applied.
func newConsole(c *config.Config) (*console.Registry, error) {
	printerOpts, err := printerOptions(c)
	if err != nil {
		return nil, err
	}

	opts := []console.Option{
		console.WithName(c.Name),
		console.WithPrinter(output.NewPrinter(printerOpts...)),
		console.WithHistoryLimit(c.HistoryLimit),
		console.WithQueueCapacity(c.QueueCapacity),
	}
	if c.TestMode {
		opts = append(opts, testutils.Deterministic()...)
	}

	reg := console.New(opts...)
	if err := reg.RegisterNatives(); err != nil {
		return nil, fmt.Errorf("failed to register natives: %w", err)
	}
	if err := reg.ApplySettings(c.Settings); err != nil {
		logger.Warn("Some configured settings were not applied", "error", err)
	}
	return reg, nil
}

// printerOptions maps the output settings of c to printer options. Test mode
// always prints plain text.
func printerOptions(c *config.Config) ([]output.Option, error) {
	var opts []output.Option
	if c.TestMode {
		opts = append(opts, output.TestMode())
	} else {
		mode, err := output.ParseMode(c.Output)
		if err != nil {
			return nil, err
		}
		theme, err := output.LoadTheme(c.Theme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, output.WithMode(mode), output.WithStyles(theme))
	}
	if c.Quiet {
		opts = append(opts, output.Silent())
	}
	return opts, nil
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting devconsole", "version", version.GetVersion())

	reg, err := newConsole(cfg)
	if err != nil {
		logger.Fatal("Failed to create console", "error", err)
	}
	host := shell.NewHost(reg, cfg.TickInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan error, 1)
	go func() { loopDone <- host.Run(ctx) }()

	sh := shell.NewInteractive(host)
	sh.Println(version.GetFormattedVersion())
	sh.Println("Type 'help' for console commands or 'exit' to quit.")
	if err := shell.RunInteractive(sh, host); err != nil {
		logger.Error("Interactive input failed", "error", err)
	}

	stop()
	if err := <-loopDone; err != nil {
		logger.Error("Host loop failed", "error", err)
	}
}

func runBatch(_ *cobra.Command, args []string) {
	scriptPath := args[0]

	logger.Info("Starting devconsole batch mode", "version", version.GetVersion(), "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		logger.Fatal("Script validation failed", "error", err)
	}

	reg, err := newConsole(cfg)
	if err != nil {
		logger.Fatal("Failed to create console", "error", err)
	}

	if err := shell.ExecuteScript(shell.NewHost(reg, cfg.TickInterval), scriptPath); err != nil {
		logger.Fatal("Script execution failed", "error", err)
	}

	logger.Info("Script executed successfully", "script", scriptPath)
}

func validateScriptFile(scriptPath string) error {
	info, err := os.Stat(scriptPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("script path is a directory: %s", scriptPath)
	}
	return nil
}
