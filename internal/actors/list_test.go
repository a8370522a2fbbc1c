package actors

import (
	"errors"
	"testing"
)

func TestWriteListDedupsByCode(t *testing.T) {
	root := t.TempDir()
	entries := []ListEntry{
		{Code: "nm0000138", Role: "actor", Name: "Leonardo DiCaprio"},
		{Code: "nm0000701", Role: "actress", Name: "Kate Winslet"},
		// Supporting-category page repeats a lead nominee.
		{Code: "nm0000138", Role: "actor", Name: "Leonardo DiCaprio"},
	}

	count, err := WriteList(root, entries)
	if err != nil {
		t.Fatalf("WriteList returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unique actors, got %d", count)
	}

	got, err := ReadList(root)
	if err != nil {
		t.Fatalf("ReadList returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries back, got %d", len(got))
	}
	if got[0].Code != "nm0000138" || got[1].Code != "nm0000701" {
		t.Fatalf("first-seen order not preserved: %+v", got)
	}
	if got[1].Role != "actress" || got[1].Name != "Kate Winslet" {
		t.Fatalf("unexpected entry: %+v", got[1])
	}
}

func TestReadListMissingFile(t *testing.T) {
	_, err := ReadList(t.TempDir())
	if !errors.Is(err, ErrNoActorsList) {
		t.Fatalf("expected ErrNoActorsList, got %v", err)
	}
}
