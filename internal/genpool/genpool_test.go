package genpool

import (
	"testing"
	"time"

	"meshforge/internal/snapshot"
)

func sampleSnapshot() *snapshot.Snapshot {
	s := snapshot.New()
	s.AddPart("p1", snapshot.Attrs{})
	n := s.AddNode("n1", snapshot.Attrs{"partId": "p1"})
	n.Radius = 1
	s.AddComponent("leaf1", snapshot.Attrs{"linkDataType": "partId", "linkData": "p1"})
	s.AddComponent("root", snapshot.Attrs{"children": "leaf1"})
	s.RootComponent = "root"
	return s
}

func TestWorkerPoolSubmitAndReceiveResult(t *testing.T) {
	pool := NewWorkerPool(2, 4)
	defer pool.Shutdown()

	resultChan := make(chan Result, 1)
	if !pool.SubmitJob(Job{Snapshot: sampleSnapshot(), ResultChan: resultChan}) {
		t.Fatalf("expected the job to be accepted into an empty queue")
	}

	select {
	case res := <-resultChan:
		if res.Error != nil {
			t.Fatalf("unexpected generation error: %v", res.Error)
		}
		if !res.Object.IsSuccessful {
			t.Fatalf("expected a successful generation result")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a worker to process the job")
	}
}

func TestWorkerPoolProcessesMultipleJobsConcurrently(t *testing.T) {
	pool := NewWorkerPool(3, 8)
	defer pool.Shutdown()

	const jobCount = 5
	resultChan := make(chan Result, jobCount)
	for i := 0; i < jobCount; i++ {
		pool.SubmitJobBlocking(Job{Snapshot: sampleSnapshot(), ResultChan: resultChan})
	}

	for i := 0; i < jobCount; i++ {
		select {
		case res := <-resultChan:
			if res.Error != nil || !res.Object.IsSuccessful {
				t.Fatalf("unexpected result %d: %+v", i, res)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for job %d", i)
		}
	}
}

func TestWorkerPoolShutdownDrainsInFlightJobFirst(t *testing.T) {
	pool := NewWorkerPool(1, 2)
	resultChan := make(chan Result, 1)
	pool.SubmitJobBlocking(Job{Snapshot: sampleSnapshot(), ResultChan: resultChan})

	select {
	case res := <-resultChan:
		if res.Error != nil || !res.Object.IsSuccessful {
			t.Fatalf("unexpected result: %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the job submitted before shutdown")
	}

	pool.Shutdown()
	if n := pool.GetQueueLength(); n != 0 {
		t.Fatalf("expected an empty queue after shutdown, got %d", n)
	}
}
