// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"testing"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

// plainWorker has no Stop method.
type plainWorker struct {
	runCount int
}

func (p *plainWorker) Run() {
	p.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

func TestWorkers_Stop_OnlyStoppableWorkersAreStopped(t *testing.T) {
	stoppable := &mockWorker{}
	plain := &plainWorker{}

	ws := &Workers{workers: []Worker{stoppable, plain}}
	ws.Run()
	ws.Stop()

	if stoppable.stopCount != 1 {
		t.Errorf("expected stopCount=1, got %d", stoppable.stopCount)
	}
}
