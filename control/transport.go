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

package control

import (
	"encoding/gob"
	"errors"
	"net"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// RequestCode is the wire identifier for one of the ten control-surface
// operations named in spec §6's table.
type RequestCode int

const (
	AlertsQueuedReq RequestCode = iota
	PopAlertReq
	GetProcessesReq
	GetProcessDetailedReq
	GetImageDetailedReq
	GetProcessSizesReq
	AddFilterReq
	ListFiltersReq
	DeleteFilterReq
	GetGlobalSizesReq
)

// Request is the single envelope type carried over the wire; only the
// fields relevant to Code are populated, mirroring the teacher's single
// grpcServer request-dispatch switch in ipc/ipcServer.go.
type Request struct {
	Code RequestCode

	Skip int
	Max  int

	PID   uint32
	Epoch int64
	Index int

	Kind    domain.FilterKind
	Pattern string
	Ops     domain.FilterOp
	ID      uint32
}

// Response is the single envelope type returned for every request. Only
// the fields relevant to the originating Code are populated.
type Response struct {
	Result Code

	Alert domain.Alert

	Processes []domain.ProcessSummary
	Process   domain.ProcessDetailed
	Image     domain.ImageDetailed
	Sizes     domain.ProcessSizes
	Filters   []domain.FilterEntry
	Global    GlobalSizes

	FilterID uint32
	Queued   bool
}

// Transport listens on a Unix domain socket and serves one gob-encoded
// Request/Response exchange per accepted connection, the same
// length-implicit framing encoding/gob already provides over a stream
// (the teacher instead frames protobuf messages behind grpc; gob supplies
// its own self-delimiting wire format so no separate length prefix is
// needed here).
type Transport struct {
	server   *Server
	listener net.Listener

	wg sync.WaitGroup
}

// Listen creates a Transport bound to socketPath, removing any stale
// socket file left behind by a prior run.
func Listen(socketPath string, server *Server) (*Transport, error) {
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	return &Transport{server: server, listener: ln}, nil
}

// Serve accepts connections until the listener is closed.
func (t *Transport) Serve() error {
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.handle(conn)
		}()
	}
}

// Close stops accepting new connections and waits for in-flight requests
// to finish.
func (t *Transport) Close() error {
	err := t.listener.Close()
	t.wg.Wait()
	return err
}

func (t *Transport) handle(conn net.Conn) {
	defer conn.Close()

	dec := gob.NewDecoder(conn)
	enc := gob.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		logrus.WithError(err).Debug("control: decode failed")
		return
	}

	resp := t.dispatch(req)
	if err := enc.Encode(&resp); err != nil {
		logrus.WithError(err).Debug("control: encode failed")
	}
}

func (t *Transport) dispatch(req Request) Response {
	switch req.Code {
	case AlertsQueuedReq:
		return Response{Result: OK, Queued: t.server.AlertsQueued()}

	case PopAlertReq:
		alert, code := t.server.PopAlert()
		return Response{Result: code, Alert: alert}

	case GetProcessesReq:
		procs, code := t.server.GetProcesses(req.Skip, req.Max)
		return Response{Result: code, Processes: procs}

	case GetProcessDetailedReq:
		detail, _, code := t.server.GetProcessDetailed(req.PID, req.Epoch)
		return Response{Result: code, Process: detail}

	case GetImageDetailedReq:
		img, code := t.server.GetImageDetailed(req.PID, req.Epoch, req.Index, req.Max)
		return Response{Result: code, Image: img}

	case GetProcessSizesReq:
		sizes, code := t.server.GetProcessSizes(req.PID, req.Epoch)
		return Response{Result: code, Sizes: sizes}

	case AddFilterReq:
		id, code := t.server.AddFilter(req.Kind, req.Ops, req.Pattern)
		return Response{Result: code, FilterID: id}

	case ListFiltersReq:
		entries, code := t.server.ListFilters(req.Kind, req.Skip)
		return Response{Result: code, Filters: entries}

	case DeleteFilterReq:
		ok, code := t.server.DeleteFilter(req.Kind, req.ID)
		return Response{Result: code, Queued: ok}

	case GetGlobalSizesReq:
		sizes, code := t.server.GetGlobalSizes()
		return Response{Result: code, Global: sizes}

	default:
		return Response{Result: BadData}
	}
}
