// Copyright 2023 Skiff Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessSeconds(t *testing.T) {
	require := require.New(t)

	p := Process{StartedAt: time.Now().Add(-5 * time.Second)}
	require.True(p.Seconds() >= 5)
	require.True(p.Seconds() < 60)
}

func TestProcessDone(t *testing.T) {
	require := require.New(t)

	var killed bool
	p := Process{Kill: func() { killed = true }}
	p.Done()
	require.True(killed)
}
