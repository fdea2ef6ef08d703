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

// Package engine wires every peacemaker component into a single value with
// no package-level globals (spec §9), the same dependency-injection shape
// the teacher's state.ContainerStateService / handler.Handlers follow: one
// constructor that builds every component bottom-up and hands borrowed
// interface handles to whatever needs them.
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/adapter"
	"github.com/nestybox/peacemaker/alertqueue"
	"github.com/nestybox/peacemaker/control"
	"github.com/nestybox/peacemaker/detect"
	"github.com/nestybox/peacemaker/domain"
	"github.com/nestybox/peacemaker/filter"
	"github.com/nestybox/peacemaker/guard"
	"github.com/nestybox/peacemaker/history"
	"github.com/nestybox/peacemaker/persist"
	"github.com/nestybox/peacemaker/stackwalk"
)

// Engine is the fully wired peacemaker core: every component named in
// spec §4, plus the adapters that sit in front of them and the control
// surface behind them.
type Engine struct {
	Filters *filter.Set
	Queue   *alertqueue.Queue
	Detect  *detect.Auditor
	History *history.Store
	Guard   *guard.Guard
	Walker  *stackwalk.Walker

	FS       *adapter.FS
	Registry *adapter.Registry
	Process  *adapter.Process
	Image    *adapter.Image
	Thread   *adapter.Thread
	Handle   *adapter.Handle

	Control   *control.Server
	Transport *control.Transport
}

// Config are the operator-supplied knobs engine.New needs; config.Config
// (the broader daemon configuration, spec's ambient config stack) maps
// onto this narrower struct at the cmd/peacemakerd boundary.
type Config struct {
	StateDir     string
	ProtectedPID uint32
	// WalkerPID is the pid the Stack Walker resolves addresses against.
	// Zero (the default) means peacemakerd itself -- stackwalk.New(0)
	// walks the calling process's own stack and /proc/self/maps.
	WalkerPID      int
	MaxStackFrames int
	SocketPath     string
}

// New builds every component bottom-up, restores persisted filters, and
// returns the wired Engine. It does not start the control surface --
// call Serve for that once the caller is ready to accept connections.
func New(cfg Config) (*Engine, error) {
	store := persist.NewStore(cfg.StateDir)

	filters := filter.New(store)
	if err := filters.Restore(domain.FilesystemFilter); err != nil {
		logrus.WithError(err).Warn("engine: restoring filesystem filters")
	}
	if err := filters.Restore(domain.RegistryFilter); err != nil {
		logrus.WithError(err).Warn("engine: restoring registry filters")
	}

	queue := alertqueue.New()
	auditor := detect.New(queue)
	hist := history.New()
	guardSvc := guard.New()
	if cfg.ProtectedPID != 0 {
		guardSvc.Update(cfg.ProtectedPID)
	}

	// stackwalk.New(0) walks the calling process's own stack -- WalkerPID's
	// zero value is therefore the correct default, not "no walker".
	walker := stackwalk.New(cfg.WalkerPID)

	deps := adapter.Deps{
		Filters:        filters,
		History:        hist,
		Detect:         auditor,
		Walker:         walker,
		MaxStackFrames: cfg.MaxStackFrames,
	}

	e := &Engine{
		Filters:  filters,
		Queue:    queue,
		Detect:   auditor,
		History:  hist,
		Guard:    guardSvc,
		Walker:   walker,
		FS:       adapter.NewFS(deps),
		Registry: adapter.NewRegistry(deps),
		Process:  adapter.NewProcess(deps),
		Image:    adapter.NewImage(deps),
		Thread:   adapter.NewThread(deps),
		Handle:   adapter.NewHandle(guardSvc),
	}

	e.Control = control.New(filters, hist, queue)

	if cfg.SocketPath != "" {
		transport, err := control.Listen(cfg.SocketPath, e.Control)
		if err != nil {
			return nil, err
		}
		e.Transport = transport
	}

	return e, nil
}

// Serve blocks accepting control-surface connections. It is a no-op
// returning nil if no SocketPath was configured.
func (e *Engine) Serve() error {
	if e.Transport == nil {
		return nil
	}
	return e.Transport.Serve()
}

// Teardown drains and tears down every component that owns background
// state, per spec §9's shutdown ordering: stop accepting new work first,
// then drain the components that block on a lock.
func (e *Engine) Teardown() {
	if e.Transport != nil {
		e.Transport.Close()
	}
	e.Filters.Teardown()
	e.Queue.Teardown()
	e.History.Teardown()
}
