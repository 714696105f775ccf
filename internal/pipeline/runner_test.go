package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

func fragment(name, url string) string {
	return fmt.Sprintf(`<dl><dt>Conference name</dt><dd><a href="%s">%s</a></dd>`+
		`<dt>Location and date</dt><dd>Berlin, Germany・May 3 - May 5</dd></dl>`, url, name)
}

func TestRunner_Run(t *testing.T) {
	store := NewMemStore()
	runner := NewRunner(store)

	fragments := []string{
		fragment("GopherCon Europe", "https://gophercon.eu/?ref=1"),
		fragment("RustFest", "https://rustfest.example.com"),
	}

	result := runner.Run(context.Background(), fragments)

	if len(result.Candidates) != 2 {
		t.Fatalf("Candidates = %d, want 2", len(result.Candidates))
	}
	if result.Candidates[0].Name != "GopherCon Europe" {
		t.Errorf("first candidate Name = %q", result.Candidates[0].Name)
	}
	if result.Candidates[0].City != "Berlin" {
		t.Errorf("first candidate City = %q", result.Candidates[0].City)
	}
	if result.Created != 2 || result.Updated != 0 {
		t.Errorf("created %d updated %d, want 2:0", result.Created, result.Updated)
	}
}

func TestRunner_RunTwiceIsIdempotent(t *testing.T) {
	store := NewMemStore()
	runner := NewRunner(store)

	fragments := []string{
		fragment("GopherCon Europe", "https://gophercon.eu"),
		fragment("RustFest", "https://rustfest.example.com"),
		fragment("JS Nordic", "https://jsnordic.example.com"),
	}

	first := runner.Run(context.Background(), fragments)
	second := runner.Run(context.Background(), fragments)

	if first.Created != 3 || first.Updated != 0 {
		t.Errorf("first run: created %d updated %d, want 3:0", first.Created, first.Updated)
	}
	if second.Created != 0 || second.Updated != 3 {
		t.Errorf("second run: created %d updated %d, want 0:3", second.Created, second.Updated)
	}
	if store.Len() != 3 {
		t.Errorf("store has %d records, want 3", store.Len())
	}
}

func TestRunner_EmptyBatch(t *testing.T) {
	runner := NewRunner(NewMemStore())

	result := runner.Run(context.Background(), nil)

	if result.Created != 0 || result.Updated != 0 || len(result.Errors) != 0 {
		t.Errorf("empty batch produced %+v", result.Report)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("Candidates = %d, want 0", len(result.Candidates))
	}
}

func TestRunner_GarbageFragmentIsReportedNotFatal(t *testing.T) {
	store := NewMemStore()
	runner := NewRunner(store)

	fragments := []string{
		fragment("GopherCon Europe", "https://gophercon.eu"),
		"<p>not a listing entry</p>", // extracts to all-sentinel, fails reconciliation
	}

	result := runner.Run(context.Background(), fragments)

	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1 entry", result.Errors)
	}
	if result.Errors[0].Item != conference.Unknown {
		t.Errorf("error keyed by %q, want the unknown sentinel", result.Errors[0].Item)
	}
}
