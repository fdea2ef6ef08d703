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

package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nestybox/peacemaker/domain"
	"github.com/nestybox/peacemaker/mocks"
)

func TestPreDeleteValueDeniesOnMatch(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	history := new(mocks.HistoryServiceIface)
	detect := new(mocks.DetectionLogicIface)

	subject := "hklm\\software\\evil\\key"
	filters.On("MatchingEntry", domain.RegistryFilter, subject, domain.OpDelete).
		Return(domain.FilterEntry{ID: 2}, true)
	history.On("HistorySummary", 0, 1<<20).Return([]domain.ProcessSummary{})
	detect.On("ReportFilterViolation", domain.SourceRegistryMatch, uint32(3), "", subject, mock.Anything).Return()

	r := NewRegistry(Deps{Filters: filters, History: history, Detect: detect})
	decision := r.PreDeleteValue(context.Background(), false, 3, `HKLM\Software\Evil`, "key")
	assert.True(t, decision.Denied)
	filters.AssertExpectations(t)
}

func TestPreSetValueAllowsOnNoMatch(t *testing.T) {
	filters := new(mocks.FilterServiceIface)
	filters.On("MatchingEntry", mock.Anything, mock.Anything, mock.Anything).Return(domain.FilterEntry{}, false)

	r := NewRegistry(Deps{Filters: filters})
	decision := r.PreSetValue(context.Background(), false, 3, `HKLM\Software\Clean`, "key")
	assert.False(t, decision.Denied)
}
