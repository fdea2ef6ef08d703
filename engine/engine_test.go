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

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestybox/peacemaker/control"
	"github.com/nestybox/peacemaker/domain"
)

func TestNewWiresEveryComponent(t *testing.T) {
	eng, err := New(Config{StateDir: t.TempDir(), ProtectedPID: 100})
	require.NoError(t, err)

	assert.Equal(t, uint32(100), eng.Guard.Protected())
	assert.NotNil(t, eng.Filters)
	assert.NotNil(t, eng.Queue)
	assert.NotNil(t, eng.History)
	assert.NotNil(t, eng.Control)
	assert.NotNil(t, eng.Walker, "Stack Walker must default to walking peacemakerd itself, not be left nil")
}

func TestFilterViolationCapturesRealStackThroughWalker(t *testing.T) {
	eng, err := New(Config{StateDir: t.TempDir()})
	require.NoError(t, err)

	id, code := eng.Control.AddFilter(domain.FilesystemFilter, domain.OpWrite, "evil.exe")
	require.Equal(t, control.OK, code)
	assert.NotZero(t, id)

	decision := eng.FS.PreWrite(context.Background(), false, 1, `C:\path\evil.exe`)
	assert.True(t, decision.Denied)

	require.True(t, eng.Control.AlertsQueued())
	alert, code := eng.Control.PopAlert()
	require.Equal(t, control.OK, code)
	assert.NotEmpty(t, alert.Stack, "the default self-walking Walker must resolve real return addresses into the alert")
}

func TestEndToEndProcessCreateThroughControlSurface(t *testing.T) {
	eng, err := New(Config{StateDir: t.TempDir()})
	require.NoError(t, err)

	eng.Process.OnProcessCreate(context.Background(), true, 42, 1, 1, "/bin/child", "/bin/parent", "/bin/parent")

	procs, code := eng.Control.GetProcesses(0, 10)
	require.Equal(t, control.OK, code)
	require.Len(t, procs, 1)
	assert.Equal(t, uint32(42), procs[0].PID)
}

func TestAddFilterThenMatchDeniesWrite(t *testing.T) {
	eng, err := New(Config{StateDir: t.TempDir()})
	require.NoError(t, err)

	id, code := eng.Control.AddFilter(domain.FilesystemFilter, domain.OpWrite, "evil.exe")
	require.Equal(t, control.OK, code)
	assert.NotZero(t, id)

	decision := eng.FS.PreWrite(context.Background(), false, 1, `C:\path\evil.exe`)
	assert.True(t, decision.Denied)
}

func TestTeardownStopsAcceptingNewFilters(t *testing.T) {
	eng, err := New(Config{StateDir: t.TempDir()})
	require.NoError(t, err)

	eng.Teardown()

	id, _ := eng.Control.AddFilter(domain.FilesystemFilter, domain.OpWrite, "anything")
	assert.Zero(t, id)

	decision := eng.FS.PreWrite(context.Background(), false, 1, "/bin/anything")
	assert.False(t, decision.Denied)
}
