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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFilePathConvertsBackslashes(t *testing.T) {
	assert.Equal(t, "C:/Windows/System32/evil.dll", NormalizeFilePath(`C:\Windows\System32\evil.dll`))
}

func TestNormalizeFilePathCleansDotSegments(t *testing.T) {
	assert.Equal(t, "C:/Windows/evil.dll", NormalizeFilePath(`C:\Windows\Temp\..\evil.dll`))
}

func TestRegistryPathJoinsKeyAndValue(t *testing.T) {
	assert.Equal(t, `HKLM\Software\Evil\key`, RegistryPath(`HKLM\Software\Evil`, "key"))
}
