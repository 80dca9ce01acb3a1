package ui

import (
	"strings"
	"testing"
)

func newHeadlessTestProgress(w *strings.Builder) Progress {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return NewProgressWithWriter(&Theme{NoColor: true}, hm, w)
}

func TestHeadlessProgressBar(t *testing.T) {
	t.Run("logs increments with counts", func(t *testing.T) {
		var buf strings.Builder
		bar := newHeadlessTestProgress(&buf).Start("Copying domains", 2)

		bar.SetTitle("git")
		bar.Increment(1)
		bar.SetTitle("testing")
		bar.Increment(1)
		bar.Done()

		out := buf.String()
		if !strings.Contains(out, "[1/2] git") {
			t.Errorf("output missing first step:\n%s", out)
		}
		if !strings.Contains(out, "[2/2] testing") {
			t.Errorf("output missing second step:\n%s", out)
		}
	})

	t.Run("clamps past the total", func(t *testing.T) {
		var buf strings.Builder
		bar := newHeadlessTestProgress(&buf).Start("work", 1)

		bar.Increment(5)
		if !strings.Contains(buf.String(), "[1/1]") {
			t.Errorf("progress not clamped:\n%s", buf.String())
		}
	})
}

func TestHeadlessSpinner(t *testing.T) {
	var buf strings.Builder
	sp := newHeadlessTestProgress(&buf).Spinner("Loading registry")

	sp.SetTitle("Validating")
	sp.Stop()

	out := buf.String()
	if !strings.Contains(out, "Loading registry") || !strings.Contains(out, "Validating") {
		t.Errorf("spinner output missing titles:\n%s", out)
	}
}

func TestHeadlessManager(t *testing.T) {
	t.Run("force overrides detection", func(t *testing.T) {
		hm := NewHeadlessManager()

		hm.ForceHeadless(true)
		if !hm.IsHeadless() {
			t.Error("IsHeadless() = false after ForceHeadless(true)")
		}

		hm.ForceHeadless(false)
		if hm.IsHeadless() {
			t.Error("IsHeadless() = true after ForceHeadless(false)")
		}
	})

	t.Run("clear reverts to detection", func(t *testing.T) {
		hm := NewHeadlessManager()
		hm.ForceHeadless(false)
		hm.ClearForce()

		// Test processes have no TTY on stdin.
		if !hm.IsHeadless() {
			t.Error("IsHeadless() = false without a terminal")
		}
	})
}
