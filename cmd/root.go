package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/resultsh/commands"
	"github.com/josephlewis42/resultsh/core/config"
	"github.com/josephlewis42/resultsh/core/env"
	"github.com/josephlewis42/resultsh/core/logger"
	"github.com/josephlewis42/resultsh/core/proc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	envFilePath  string
	eventLogPath string

	// exitCode is the status the process exits with once the command returns.
	exitCode = proc.ExitSuccess
)

func loadConfig(appFs afero.Fs) (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(appFs, cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

func openEventLog(appFs afero.Fs) (*logger.SessionLogger, func() error, error) {
	if eventLogPath == "" {
		return nil, func() error { return nil }, nil
	}

	fd, err := appFs.OpenFile(eventLogPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return logger.NewJsonLinesLogRecorder(fd).NewSession(), fd.Close, nil
}

// envFileRejected reports refused env-file entries the way the shell reports
// refused assignment lines.
func envFileRejected(configuration *config.Configuration) func(error) {
	return func(err error) {
		if errors.Is(err, env.ErrCapacity) || configuration.ReportAssignmentErrors {
			log.Println(err)
		}
	}
}

// rootCmd runs the interpreter when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   commands.Name,
	Short: "A minimal command interpreter",
	Long: `Reads commands from standard input one line at a time and runs them.
The exit status of every command is kept in a variable, $result by default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		osFs := afero.NewOsFs()

		configuration, err := loadConfig(osFs)
		if err != nil {
			return err
		}

		vars := env.NewStore(configuration.StatusVariable, configuration.MaxVariables)
		if envFilePath != "" {
			if err := env.LoadFile(configuration.Fs(), vars, envFilePath, envFileRejected(configuration)); err != nil {
				return err
			}
		}

		events, closeEvents, err := openEventLog(configuration.Fs())
		if err != nil {
			return err
		}
		defer closeEvents()

		sh, err := commands.NewShell(commands.Options{
			Config: configuration,
			Vars:   vars,
			Stdin:  os.Stdin,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Path:   os.Getenv(commands.EnvPath),
			Events: events,
		})
		if err != nil {
			return err
		}
		defer sh.Close()

		exitCode = sh.Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It returns the code the process should exit with.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return proc.ExitFailure
	}
	return exitCode
}

func init() {
	log.SetPrefix(commands.Name + ": ")
	log.SetFlags(0)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration directory, built-in defaults if empty")
	rootCmd.Flags().StringVar(&envFilePath, "env-file", "", "dotenv file with variables to preload")
	rootCmd.Flags().StringVar(&eventLogPath, "event-log", "", "append a JSON lines record of every line to this file")
}
