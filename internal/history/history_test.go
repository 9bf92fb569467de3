package history

import (
	"testing"
	"time"

	"github.com/roundsight/predictor/models"
)

func TestAppendAndWindow(t *testing.T) {
	log := New(nil)
	now := time.Now()

	for _, o := range []models.Outcome{models.Red, models.Red, models.Blue, models.Tie} {
		log.Append(o, now)
	}

	if log.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", log.Len())
	}

	window := log.Window(3)
	expected := []models.Outcome{models.Red, models.Blue, models.Tie}
	if len(window) != len(expected) {
		t.Fatalf("Window(3) = %v, want %v", window, expected)
	}
	for i := range window {
		if window[i] != expected[i] {
			t.Errorf("Window(3)[%d] = %v, want %v", i, window[i], expected[i])
		}
	}

	// A window larger than the log returns everything.
	if got := log.Window(100); len(got) != 4 {
		t.Errorf("Window(100) length = %d, want 4", len(got))
	}
}

func TestRemoveLast(t *testing.T) {
	log := New(nil)
	if log.RemoveLast() {
		t.Error("RemoveLast() on empty log = true, want false")
	}

	log.Append(models.Red, time.Now())
	if !log.RemoveLast() {
		t.Error("RemoveLast() = false, want true")
	}
	if log.Len() != 0 {
		t.Errorf("Len() after remove = %d, want 0", log.Len())
	}
}

func TestRecentIsACopy(t *testing.T) {
	log := New(nil)
	log.Append(models.Red, time.Now())

	recent := log.Recent(1)
	recent[0].Result = models.Blue

	if got := log.Recent(1)[0].Result; got != models.Red {
		t.Errorf("log entry mutated through Recent copy: %v", got)
	}
}
