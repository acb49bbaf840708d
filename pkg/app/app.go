package app

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/smashshell/smash/pkg/config"
	"github.com/smashshell/smash/pkg/log"
	"github.com/smashshell/smash/pkg/shell"
	"github.com/smashshell/smash/pkg/utils"
)

// App struct
type App struct {
	closers []io.Closer

	Config *config.AppConfig
	Log    *logrus.Entry

	Shell   *shell.State
	Signals *shell.SignalHandler
	Loop    *shell.Loop
}

// NewApp bootstraps a new application: builds the logger, installs
// smash's job-control signal handler, creates the shell state with the
// user's prompt and shutdown grace, seeds it with any configured
// startup aliases, and wires a Loop over stdin/stdout/stderr.
func NewApp(cfg *config.AppConfig) (*App, error) {
	app := &App{
		closers: []io.Closer{},
		Config:  cfg,
	}

	app.Log = log.NewLogger(cfg)

	app.Signals = shell.InstallSignalHandler()

	state, err := shell.New(app.Log, cfg.UserConfig.Prompt, cfg.UserConfig.ShutdownGrace)
	if err != nil {
		return app, err
	}
	app.Shell = state

	for _, sa := range cfg.UserConfig.StartupAliases {
		app.Shell.Aliases.Set(sa.Name, sa.Replacement)
	}

	app.Loop = shell.NewLoop(app.Shell, app.Signals, os.Stdin, os.Stdout, os.Stderr)

	return app, nil
}

// Run drives the read-eval loop to completion and returns the process
// exit status.
func (app *App) Run() int {
	return app.Loop.Run()
}

// Close closes any resources the app opened.
func (app *App) Close() error {
	return utils.CloseMany(app.closers)
}

type errorMapping struct {
	originalError string
	newError      string
}

// KnownError takes a bootstrap error and tells us whether it's one we
// know about well enough to print a nicely formatted version of rather
// than a stack trace. It only ever sees errors from NewApp, since Run's
// own exit status isn't routed through here.
func (app *App) KnownError(err error) (string, bool) {
	errorMessage := err.Error()

	mappings := []errorMapping{
		{
			originalError: "permission denied",
			newError:      "smash cannot access its config directory. Check its permissions or set $CONFIG_DIR to a writable path.",
		},
	}

	for _, mapping := range mappings {
		if strings.Contains(errorMessage, mapping.originalError) {
			return mapping.newError, true
		}
	}

	return "", false
}
