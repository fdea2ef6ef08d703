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

// Package simhost provides in-process stand-ins for the out-of-scope OS
// collaborators named in spec §6 (kernel filter-manager callbacks,
// process/thread/image notification registration). It is not a
// reimplementation of the kernel -- it exists so this package's end-to-end
// tests and peacemakerd's "--simulate" mode have something to drive the
// domain interfaces with, the same split the teacher keeps between its real
// cross-process nsenter package and its mocks/ test doubles.
package simhost

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/nestybox/peacemaker/engine"
)

// Host generates a synthetic stream of process/image/thread/filesystem
// events and drives them through a wired engine.Engine exactly the way a
// real kernel callback would.
type Host struct {
	eng    *engine.Engine
	nextPID uint32
}

// NewHost returns a Host driving eng.
func NewHost(eng *engine.Engine) *Host {
	return &Host{eng: eng, nextPID: 1000}
}

// allocPID returns a fresh synthetic PID.
func (h *Host) allocPID() uint32 {
	return atomic.AddUint32(&h.nextPID, 1)
}

// SpawnProcess simulates a process-create notification: parentPID created
// a new process at imagePath. fromKernel mirrors the kernel-trust boundary
// (spec §1 non-goals) -- true for "this came from a trusted kernel
// callback", false for anything simhost wants detection logic to inspect.
func (h *Host) SpawnProcess(ctx context.Context, fromKernel bool, parentPID uint32, imagePath string) uint32 {
	pid := h.allocPID()
	h.eng.Process.OnProcessCreate(ctx, fromKernel, pid, parentPID, parentPID, imagePath, imagePath, imagePath)
	return pid
}

// SpawnRemoteProcess simulates callerPID creating a process on behalf of
// parentPID -- the cross-process parentage case spec §4.D's
// ParentProcessIDSpoofing alert exists to catch.
func (h *Host) SpawnRemoteProcess(ctx context.Context, callerPID, parentPID uint32, imagePath, callerPath string) uint32 {
	pid := h.allocPID()
	h.eng.Process.OnProcessCreate(ctx, false, pid, parentPID, callerPID, imagePath, callerPath, imagePath)
	return pid
}

// ExitProcess simulates a process-exit notification.
func (h *Host) ExitProcess(pid uint32) {
	h.eng.Process.OnProcessExit(pid)
}

// LoadImage simulates an image-load notification within pid.
func (h *Host) LoadImage(ctx context.Context, pid uint32, imagePath string) {
	h.eng.Image.OnImageLoad(ctx, pid, imagePath)
}

// CreateThread simulates a thread-create notification, callerPID creating
// a thread in targetPID starting at startAddr.
func (h *Host) CreateThread(ctx context.Context, isFirstThread bool, callerPID, targetPID uint32, startAddr uint64, callerPath, targetPath string) {
	h.eng.Thread.OnThreadCreate(ctx, isFirstThread, callerPID, targetPID, startAddr, callerPath, targetPath)
}

// WriteFile simulates a pre-write filesystem callback.
func (h *Host) WriteFile(ctx context.Context, fromKernel bool, callerPID uint32, rawPath string) bool {
	return h.eng.FS.PreWrite(ctx, fromKernel, callerPID, rawPath).Denied
}

// ExecuteFile simulates a pre-create-for-execute filesystem callback.
func (h *Host) ExecuteFile(ctx context.Context, fromKernel bool, callerPID uint32, rawPath string) bool {
	return h.eng.FS.PreCreateExecute(ctx, fromKernel, callerPID, rawPath).Denied
}

// SetRegistryValue simulates a pre-set-value registry callback.
func (h *Host) SetRegistryValue(ctx context.Context, fromKernel bool, callerPID uint32, keyPath, valueName string) bool {
	return h.eng.Registry.PreSetValue(ctx, fromKernel, callerPID, keyPath, valueName).Denied
}

// SimulatedImagePath synthesizes a plausible image path for sequence n,
// used by peacemakerd's --simulate mode to generate varied fixtures
// without depending on any real filesystem content.
func SimulatedImagePath(n int) string {
	return fmt.Sprintf("/simulated/bin/proc-%d.exe", n)
}
