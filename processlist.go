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

package skiff

import (
	"sort"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/skiffdb/skiff/sql"
)

// ProcessList keeps track of all in-flight analyses and their status.
type ProcessList struct {
	mu      sync.RWMutex
	nextPid uint64
	procs   map[uint64]*sql.Process
}

// NewProcessList creates a new process list.
func NewProcessList() *ProcessList {
	return &ProcessList{
		procs: make(map[uint64]*sql.Process),
	}
}

// AddProcess registers a new analysis and returns a context bound to its
// lifetime. The returned context carries the assigned pid, the query text and
// a fresh query ID, and is cancelled when the process is killed or done.
func (pl *ProcessList) AddProcess(ctx *sql.Context, query string) *sql.Context {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.nextPid++
	pid := pl.nextPid

	newCtx, cancel := ctx.NewSubContext()
	newCtx.ApplyOpts(
		sql.WithPid(pid),
		sql.WithQuery(query),
		sql.WithQueryID(uuid.NewV4().String()),
	)

	pl.procs[pid] = &sql.Process{
		Pid:        pid,
		Connection: ctx.ID(),
		User:       ctx.Client().User,
		Query:      query,
		QueryID:    newCtx.QueryID(),
		StartedAt:  time.Now(),
		Kill:       cancel,
	}

	return newCtx
}

// Processes returns the list of current processes, ordered by pid.
func (pl *ProcessList) Processes() []sql.Process {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	result := make([]sql.Process, 0, len(pl.procs))
	for _, proc := range pl.procs {
		result = append(result, *proc)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Pid < result[j].Pid
	})

	return result
}

// Kill cancels the analysis with the given pid.
func (pl *ProcessList) Kill(pid uint64) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if proc, ok := pl.procs[pid]; ok {
		logrus.Infof("kill query: pid %d", pid)
		proc.Done()
		delete(pl.procs, pid)
	}
}

// KillConnection cancels all analyses for a given connection id.
func (pl *ProcessList) KillConnection(connID uint32) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	for pid, proc := range pl.procs {
		if proc.Connection == connID {
			logrus.Infof("kill query: pid %d", pid)
			proc.Done()
			delete(pl.procs, pid)
		}
	}
}

// Done removes the finished process with the given pid from the process list.
// If the process does not exist, it will do nothing.
func (pl *ProcessList) Done(pid uint64) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if proc, ok := pl.procs[pid]; ok {
		proc.Done()
	}

	delete(pl.procs, pid)
}
