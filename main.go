package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/yaml"
	"github.com/samber/lo"

	"github.com/smashshell/smash/pkg/app"
	"github.com/smashshell/smash/pkg/config"
	"github.com/smashshell/smash/pkg/utils"
)

const DEFAULT_VERSION = "unversioned"

var (
	commit      string
	version     = DEFAULT_VERSION
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
)

func main() {
	updateBuildInfo()

	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("smash")
	flaggy.SetDescription("A small interactive job-control shell")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/smashshell/smash"

	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "a boolean")
	flaggy.SetVersion(info)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		err := encoder.Encode(config.GetDefaultConfig())
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("smash", version, commit, date, buildSource, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}

	shellApp, err := app.NewApp(appConfig)
	if err != nil {
		reportBootstrapError(shellApp, err)
	}
	defer shellApp.Close()

	os.Exit(shellApp.Run())
}

func reportBootstrapError(shellApp *app.App, err error) {
	if errMessage, known := shellApp.KnownError(err); known {
		log.Println(errMessage)
		os.Exit(1)
	}

	newErr := errors.Wrap(err, 0)
	stackTrace := newErr.ErrorStack()
	if shellApp.Log != nil {
		shellApp.Log.Error(stackTrace)
	}
	log.Fatalf("an unexpected error occurred\n\n%s", stackTrace)
}

func updateBuildInfo() {
	if version == DEFAULT_VERSION {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			revision, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.revision"
			})
			if ok {
				commit = revision.Value
				// if smash was built from source we'll show the version as the
				// abbreviated commit hash
				version = utils.SafeTruncate(revision.Value, 7)
			}

			// if version hasn't been set we assume that neither has the date
			time, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.time"
			})
			if ok {
				date = time.Value
			}
		}
	}
}
