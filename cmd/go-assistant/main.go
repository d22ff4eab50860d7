package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/calendar"
	"github.com/tartampluch/go-assistant/internal/commands"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/importer"
	"github.com/tartampluch/go-assistant/internal/server"
)

// main delegates to runMain so deferred cleanups (like closing log files) run
// before the process terminates. os.Exit() does not run defers, so an integer
// code is returned first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	configPath := flag.String(config.FlagConfig, "", config.FlagDescConfig)
	serveFeed := flag.Bool(config.FlagServe, false, config.FlagDescServe)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// Configure structured logging early to capture startup issues.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// Root context cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, *configPath, *serveFeed); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the dependencies and starts the REPL.
// The address book lives for the process lifetime; there is no persistence.
func run(ctx context.Context, configPath string, serveFeed bool) error {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}

	addressBook := book.New()
	clock := book.RealClock{}

	handler := &commands.Handler{
		Book:     addressBook,
		Clock:    clock,
		Loc:      commands.NewLocalizer(settings.Language),
		Importer: &importer.Importer{Fetcher: importer.NewHTTPFetcher()},
		Source: importer.Source{
			Mode:      settings.Source.Mode,
			LocalPath: settings.Source.LocalPath,
			WebURL:    settings.Source.WebURL,
			WebUser:   settings.Source.WebUser,
			WebPass:   settings.Source.WebPass,
		},
	}

	if serveFeed {
		srv := server.NewFeedServer(settings.ServerPort)
		go func() {
			if err := srv.Start(ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
			}
		}()

		handler.Publish = func() {
			data, err := calendar.Render(clock.Now(), addressBook)
			if err != nil {
				slog.Warn(config.MsgPublishFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return
			}
			srv.Publish(data)
		}
		// Publish the (empty) feed so clients get a valid calendar right away.
		handler.Publish()
	}

	return handler.Run(ctx, os.Stdin, os.Stdout)
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// The REPL owns stdout, so logs stay off it: normal runs write JSON to a file
// in the user cache dir; -debug switches to a readable handler on stderr.
func setupLogging(debugMode bool) io.Closer {
	if debugMode {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:     slog.LevelDebug,
			AddSource: true,
		})))
		return nil
	}

	var w io.Writer = io.Discard
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			w = f
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
