package queue

import "testing"

func TestParseStatus(t *testing.T) {
	if status, ok := ParseStatus(" Pending "); !ok || status != StatusPending {
		t.Fatalf("expected pending, got %q ok=%v", status, ok)
	}
	if _, ok := ParseStatus("ripping"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
	if _, ok := ParseStatus(""); ok {
		t.Fatal("expected empty status to be rejected")
	}
}

func TestItemLifecycleHelpers(t *testing.T) {
	item := Item{Status: StatusTranscribing}
	if !item.IsProcessing() || item.IsTerminal() {
		t.Fatalf("transcribing should be processing, got %#v", item)
	}

	item.SetFailed("boom")
	if item.Status != StatusFailed || !item.IsTerminal() || item.ErrorMessage != "boom" {
		t.Fatalf("unexpected failed item: %#v", item)
	}

	item.SetReview("needs eyes")
	if item.Status != StatusReview || !item.NeedsReview || item.ReviewReason != "needs eyes" {
		t.Fatalf("unexpected review item: %#v", item)
	}
}

func TestHasPair(t *testing.T) {
	if (Item{DiarizedPath: " "}).HasPair() {
		t.Fatal("blank diarized path should not count as a pair")
	}
	if !(Item{DiarizedPath: "/in/x_part1.wav"}).HasPair() {
		t.Fatal("expected pair")
	}
}
