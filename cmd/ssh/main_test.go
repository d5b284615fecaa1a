package main

import (
	"sync"
	"testing"
)

func TestSizeTrackerUpdates(t *testing.T) {
	tr := newSizeTracker(80, 24)
	if w, h, err := tr.getSize(); w != 80 || h != 24 || err != nil {
		t.Fatalf("getSize() = %d, %d, %v", w, h, err)
	}

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.update(100+i, 40)
		}()
		_, _, _ = tr.getSize()
	}
	wg.Wait()

	w, h, _ := tr.getSize()
	if w < 100 || w > 109 || h != 40 {
		t.Errorf("after updates getSize() = %d, %d", w, h)
	}
}
