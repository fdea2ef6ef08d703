//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	systemd "github.com/coreos/go-systemd/daemon"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/nestybox/peacemaker/config"
	"github.com/nestybox/peacemaker/engine"
	"github.com/nestybox/peacemaker/internal/simhost"
)

const usage = `peacemakerd endpoint-protection engine

peacemakerd audits process creation, thread injection, image loads and
filesystem/registry access against an operator-maintained filter set,
and exposes queued alerts and process history over a control socket.
`

func exitHandler(signalChan chan os.Signal, eng *engine.Engine, prof interface{ Stop() }) {
	var printStack bool

	s := <-signalChan

	logrus.Warnf("peacemakerd caught signal: %s", s)
	logrus.Info("Stopping (gracefully) ...")

	systemd.SdNotify(false, systemd.SdNotifyStopping)

	switch s {
	case syscall.SIGABRT, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGSEGV:
		printStack = true
	}

	if printStack {
		stacktrace := make([]byte, 32768)
		length := runtime.Stack(stacktrace, true)
		logrus.Warnf("\n\n%s\n", string(stacktrace[:length]))
	}

	eng.Teardown()

	if prof != nil {
		prof.Stop()
	}

	logrus.Info("Exiting ...")
	os.Exit(0)
}

func runProfiler(ctx *cli.Context) (interface{ Stop() }, error) {
	var prof interface{ Stop() }

	cpuProfOn := ctx.Bool("cpu-profiling")
	memProfOn := ctx.Bool("memory-profiling")

	if cpuProfOn && memProfOn {
		return nil, fmt.Errorf("unsupported parameter combination: cpu and memory profiling")
	}
	if !(cpuProfOn || memProfOn) {
		return nil, nil
	}

	if cpuProfOn {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	if memProfOn {
		prof = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}

	return prof, nil
}

func setLogLevel(level string) error {
	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info", "":
		logrus.SetLevel(logrus.InfoLevel)
	case "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("log-level option %q not recognized", level)
	}
	return nil
}

func runSimulation(eng *engine.Engine) {
	host := simhost.NewHost(eng)
	ctx := context.Background()

	shell := host.SpawnProcess(ctx, false, 1, "/usr/bin/bash")
	attacker := host.SpawnProcess(ctx, false, 1, "/usr/bin/evil")
	child := host.SpawnRemoteProcess(ctx, attacker, shell, simhost.SimulatedImagePath(1), "/usr/bin/evil")
	host.LoadImage(ctx, child, simhost.SimulatedImagePath(2))
	host.CreateThread(ctx, false, shell, child, 0x7ffff7a00000, "/usr/bin/bash", simhost.SimulatedImagePath(1))
	host.ExitProcess(child)

	logrus.Info("peacemakerd: simulation fixtures injected")
}

func main() {
	app := cli.NewApp()
	app.Name = "peacemakerd"
	app.Usage = usage

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML configuration file",
		},
		cli.IntFlag{
			Name:  "protected-pid",
			Usage: "pid of the process the Protected-Process Guard protects",
		},
		cli.IntFlag{
			Name:  "walker-pid",
			Usage: "pid whose stack/memory map the Stack Walker resolves addresses against (0 = peacemakerd itself)",
		},
		cli.StringFlag{
			Name:  "state-dir",
			Usage: "directory holding persisted filter state (overrides config)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "log categories to include (debug, info, warning, error, fatal)",
		},
		cli.BoolFlag{
			Name:  "cpu-profiling",
			Usage: "enable cpu-profiling data collection",
		},
		cli.BoolFlag{
			Name:  "memory-profiling",
			Usage: "enable memory-profiling data collection",
		},
		cli.BoolFlag{
			Name:  "simulate",
			Usage: "inject synthetic events via internal/simhost instead of waiting on a real OS integration",
		},
	}

	app.Before = func(ctx *cli.Context) error {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
		return setLogLevel(ctx.String("log-level"))
	}

	app.Action = func(ctx *cli.Context) error {
		logrus.Info("Initiating peacemakerd ...")

		cfg, err := config.Load(ctx.String("config"))
		if err != nil {
			return err
		}

		if v := ctx.String("state-dir"); v != "" {
			cfg.StateDir = v
		}
		if v := ctx.Int("protected-pid"); v != 0 {
			cfg.ProtectedPID = uint32(v)
		}
		if v := ctx.Int("walker-pid"); v != 0 {
			cfg.WalkerPID = v
		}
		if !ctx.IsSet("log-level") {
			if err := setLogLevel(cfg.LogLevel); err != nil {
				return err
			}
		}

		if err := os.MkdirAll(cfg.StateDir, 0700); err != nil {
			return fmt.Errorf("failed to create state dir %s: %w", cfg.StateDir, err)
		}

		eng, err := engine.New(engine.Config{
			StateDir:       cfg.StateDir,
			ProtectedPID:   cfg.ProtectedPID,
			WalkerPID:      cfg.WalkerPID,
			MaxStackFrames: cfg.MaxStackFrames,
			SocketPath:     cfg.SocketPath,
		})
		if err != nil {
			return fmt.Errorf("failed to build engine: %w", err)
		}

		prof, err := runProfiler(ctx)
		if err != nil {
			logrus.Fatal(err)
		}

		exitChan := make(chan os.Signal, 1)
		signal.Notify(exitChan,
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGSEGV,
			syscall.SIGQUIT,
			syscall.SIGABRT,
		)
		go exitHandler(exitChan, eng, prof)

		if ctx.Bool("simulate") {
			runSimulation(eng)
		}

		systemd.SdNotify(false, systemd.SdNotifyReady)
		logrus.Info("Ready ...")

		if err := eng.Serve(); err != nil {
			logrus.Errorf("control surface exited: %v", err)
		}

		logrus.Info("Done.")
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
