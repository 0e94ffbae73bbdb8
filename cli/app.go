package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/urfave/cli.v1"

	"macremote/api"
	"macremote/config"
	"macremote/logging"
	"macremote/settings"
)

// Version is the client version
const Version = "1.0.0"

// session holds what every command needs. It is opened in the app's Before
// hook and closed in After.
type session struct {
	cfg      *config.Config
	logger   *logging.Logger
	store    *settings.BadgerStore
	settings *settings.Settings
	in       *bufio.Reader
	out      io.Writer
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close settings store: %v", err)
		}
	}
	s.logger.Close()
}

func (s *session) client() *api.Client {
	return api.NewClient(s.settings, s.cfg.HTTPTimeout(), s.logger.Named("api"))
}

func (s *session) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.HTTPTimeout()+s.cfg.HTTPTimeout()/2)
}

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Path to config file",
		Value: config.DefaultPath(),
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "Override log level (DEBUG, INFO, WARN, ERROR)",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "Override the directory holding saved settings",
	}
	yesFlag = cli.BoolFlag{
		Name:  "yes, y",
		Usage: "Answer yes to confirmation prompts",
	}
)

// NewApp builds the command-line application. Prompts read from in and all
// command output goes to out.
func NewApp(in io.Reader, out io.Writer) *cli.App {
	sess := &session{
		in:  bufio.NewReader(in),
		out: out,
	}

	app := cli.NewApp()
	app.Name = "macremote"
	app.Usage = "find and control a Mac running the remote control server"
	app.Version = Version
	app.Writer = out
	app.Flags = []cli.Flag{configFlag, logLevelFlag, dataDirFlag}
	app.Commands = []cli.Command{
		discoverCommand(sess),
		statusCommand(sess),
		camerasCommand(sess),
		cameraCommand(sess),
		lockCommand(sess),
		restartCommand(sess),
		testCommand(sess),
		configCommand(sess),
	}
	app.Before = func(ctx *cli.Context) error {
		return sess.open(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		if sess.logger != nil {
			sess.close()
		}
		return nil
	}
	return app
}

// open loads configuration, sets up logging and opens the settings store
func (s *session) open(ctx *cli.Context) error {
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override config with command line arguments if provided
	if v := ctx.GlobalString(logLevelFlag.Name); v != "" {
		cfg.LogLevel = v
	}
	if v := ctx.GlobalString(dataDirFlag.Name); v != "" {
		cfg.DataDir = v
	}

	logger.SetLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		if err := logger.SetOutputFile(cfg.LogFile); err != nil {
			logger.Error("Logging to console only: %v", err)
		}
	}

	store, err := settings.OpenBadgerStore(filepath.Join(cfg.DataDir, "settings"), logger.Named("store"))
	if err != nil {
		logger.Close()
		return err
	}

	s.cfg = cfg
	s.logger = logger
	s.store = store
	s.settings = settings.New(store)
	logger.Debug("Settings store opened in %s", cfg.DataDir)
	return nil
}
