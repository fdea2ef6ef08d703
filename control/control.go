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

// Package control implements the Control Surface (spec §4.H): a
// request/reply dispatcher exposing paged queries, detail fetches, filter
// CRUD and size counts to an external UI. Every request is validated
// against its declared input/output envelope before touching any other
// component, and every internal error is translated to the small fixed
// result-code vocabulary from spec §7 at this boundary -- the same
// translate-at-the-edge discipline the teacher's ipc/apis.go applies to
// grpcCodes/grpcStatus.
package control

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Code is the result-code vocabulary from spec §7.
type Code int

const (
	OK Code = iota
	InsufficientResources
	BadData
	NotFound
	NoMemory
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case InsufficientResources:
		return "INSUFFICIENT_RESOURCES"
	case BadData:
		return "BAD_DATA"
	case NotFound:
		return "NOT_FOUND"
	case NoMemory:
		return "NO_MEMORY"
	default:
		return "UNKNOWN"
	}
}

// maxListFilters is the literal per-call cap spec §6's LIST_FILTERS table
// names ("[entry × ≤10]").
const maxListFilters = 10

// GlobalSizes answers GET_GLOBAL_SIZES.
type GlobalSizes struct {
	ProcessCount  int
	FSFilterCount int
	RegFilterCount int
}

// Server dispatches the ten control-surface request codes over the A/C/E
// components it is handed at construction time.
type Server struct {
	Filters domain.FilterServiceIface
	History domain.HistoryServiceIface
	Queue   domain.AlertQueueIface
}

// New returns a Server backed by the given components.
func New(filters domain.FilterServiceIface, history domain.HistoryServiceIface, queue domain.AlertQueueIface) *Server {
	return &Server{Filters: filters, History: history, Queue: queue}
}

// AlertsQueued answers ALERTS_QUEUED.
func (s *Server) AlertsQueued() bool {
	return !s.Queue.IsEmpty()
}

// PopAlert answers POP_ALERT.
func (s *Server) PopAlert() (domain.Alert, Code) {
	alert, ok := s.Queue.Pop()
	if !ok {
		return domain.Alert{}, NotFound
	}
	return alert, OK
}

// GetProcesses answers GET_PROCESSES.
func (s *Server) GetProcesses(skip, max int) ([]domain.ProcessSummary, Code) {
	if skip < 0 || max < 0 {
		return nil, InsufficientResources
	}
	return s.History.HistorySummary(skip, max), OK
}

// GetProcessDetailed answers GET_PROCESS_DETAILED.
func (s *Server) GetProcessDetailed(pid uint32, epoch int64) (domain.ProcessDetailed, uuid.UUID, Code) {
	detail, ok := s.History.Detailed(domain.ProcessKey{PID: pid, Epoch: epoch})
	if !ok {
		return domain.ProcessDetailed{}, uuid.UUID{}, NotFound
	}
	cursor := uuid.New()
	logrus.WithFields(logrus.Fields{"pid": pid, "epoch": epoch, "cursor": cursor}).Debug("control: process detail fetched")
	return detail, cursor, OK
}

// GetImageDetailed answers GET_IMAGE_DETAILED.
func (s *Server) GetImageDetailed(pid uint32, epoch int64, index, maxStack int) (domain.ImageDetailed, Code) {
	if index < 0 {
		return domain.ImageDetailed{}, BadData
	}
	img, ok := s.History.ImageDetailed(domain.ProcessKey{PID: pid, Epoch: epoch}, index)
	if !ok {
		return domain.ImageDetailed{}, NotFound
	}
	if maxStack >= 0 && len(img.LoadStack) > maxStack {
		img.LoadStack = img.LoadStack[:maxStack]
	}
	return img, OK
}

// GetProcessSizes answers GET_PROCESS_SIZES.
func (s *Server) GetProcessSizes(pid uint32, epoch int64) (domain.ProcessSizes, Code) {
	sizes, ok := s.History.Sizes(domain.ProcessKey{PID: pid, Epoch: epoch})
	if !ok {
		return domain.ProcessSizes{}, NotFound
	}
	return sizes, OK
}

// AddFilter answers ADD_FILTER.
func (s *Server) AddFilter(kind domain.FilterKind, ops domain.FilterOp, pattern string) (uint32, Code) {
	if pattern == "" || len(pattern) > domain.MaxPatternLen {
		return 0, InsufficientResources
	}
	id, err := s.Filters.Add(kind, pattern, ops)
	if err != nil {
		return 0, BadData
	}
	if id == 0 {
		return 0, NoMemory
	}
	return id, OK
}

// ListFilters answers LIST_FILTERS, returning up to maxListFilters entries
// per the literal table in spec §6.
func (s *Server) ListFilters(kind domain.FilterKind, skip int) ([]domain.FilterEntry, Code) {
	if skip < 0 {
		return nil, InsufficientResources
	}
	return s.Filters.List(kind, skip, maxListFilters), OK
}

// DeleteFilter answers DELETE_FILTER.
func (s *Server) DeleteFilter(kind domain.FilterKind, id uint32) (bool, Code) {
	if id == 0 {
		return false, BadData
	}
	return s.Filters.Remove(kind, id), OK
}

// GetGlobalSizes answers GET_GLOBAL_SIZES.
func (s *Server) GetGlobalSizes() (GlobalSizes, Code) {
	return GlobalSizes{
		ProcessCount:   s.History.Count(),
		FSFilterCount:  s.Filters.Count(domain.FilesystemFilter),
		RegFilterCount: s.Filters.Count(domain.RegistryFilter),
	}, OK
}

// ErrUnknownRequest is returned by the transport layer for an unrecognized
// request code.
var ErrUnknownRequest = errors.New("control: unknown request code")
