package index

import (
	"os"
	"path/filepath"
	"testing"

	"cinetree/internal/films"
)

func writeFilmFile(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func defaultScanOptions() ScanOptions {
	return ScanOptions{
		Pattern:    films.MustCompilePattern(films.DefaultPattern),
		Extensions: []string{".mkv", ".avi", ".mp4"},
	}
}

func TestScanExtractsIdentities(t *testing.T) {
	root := t.TempDir()
	writeFilmFile(t, root, "(1997) Titanic.mkv")
	writeFilmFile(t, root, "drama", "(1939) Gone with the Wind.avi")
	writeFilmFile(t, root, "notes.txt")

	result, err := Scan(root, defaultScanOptions())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	want := films.Identity{Title: "Gone with the Wind", Year: 1939}
	if result.Entries[0].Identity != want {
		t.Fatalf("unexpected first identity: %+v", result.Entries[0].Identity)
	}
	if !filepath.IsAbs(result.Entries[0].Path) {
		t.Fatalf("expected absolute path, got %q", result.Entries[0].Path)
	}
}

func TestScanCollectsUnparsedNames(t *testing.T) {
	root := t.TempDir()
	writeFilmFile(t, root, "Titanic 1997.mkv")
	writeFilmFile(t, root, "(1997) Titanic.mkv")

	result, err := Scan(root, defaultScanOptions())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if len(result.Unparsed) != 1 {
		t.Fatalf("expected 1 unparsed file, got %d", len(result.Unparsed))
	}
	if filepath.Base(result.Unparsed[0]) != "Titanic 1997.mkv" {
		t.Fatalf("unexpected unparsed file %q", result.Unparsed[0])
	}
}

func TestScanDedupSkipsRepeatedIdentity(t *testing.T) {
	root := t.TempDir()
	writeFilmFile(t, root, "(1997) Titanic.mkv")
	writeFilmFile(t, root, "backup", "(1997) Titanic.avi")

	opts := defaultScanOptions()
	opts.Dedup = true
	result, err := Scan(root, opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry after dedup, got %d", len(result.Entries))
	}
	if len(result.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(result.Duplicates))
	}

	opts.Dedup = false
	result, err = Scan(root, opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected both copies without dedup, got %d", len(result.Entries))
	}
}

func TestScanRestrictLimitsWalk(t *testing.T) {
	root := t.TempDir()
	writeFilmFile(t, root, "comedy", "(1994) Forrest Gump.mkv")
	writeFilmFile(t, root, "drama", "(1997) Titanic.mkv")

	opts := defaultScanOptions()
	opts.Restrict = "drama"
	result, err := Scan(root, opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry under drama, got %d", len(result.Entries))
	}
	if result.Entries[0].Identity.Title != "Titanic" {
		t.Fatalf("unexpected entry: %+v", result.Entries[0])
	}
}

func TestScanUnreadableSubdirectoryIsSoftFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeFilmFile(t, root, "(1997) Titanic.mkv")
	locked := filepath.Join(root, "locked")
	writeFilmFile(t, root, "locked", "(2009) Up.mkv")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	result, err := Scan(root, defaultScanOptions())
	if err != nil {
		t.Fatalf("unreadable subdirectory must not abort the scan: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Identity.Title != "Titanic" {
		t.Fatalf("expected the readable film indexed, got %+v", result.Entries)
	}
	if len(result.Unreadable) != 1 || result.Unreadable[0] != locked {
		t.Fatalf("expected %q reported unreadable, got %v", locked, result.Unreadable)
	}
}

func TestScanMissingRootFails(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent"), defaultScanOptions()); err == nil {
		t.Fatal("expected error for missing scan root")
	}
}

func TestScanIgnoresExtensionCase(t *testing.T) {
	root := t.TempDir()
	writeFilmFile(t, root, "(1997) Titanic.MKV")

	result, err := Scan(root, defaultScanOptions())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected uppercase extension to match, got %d entries", len(result.Entries))
	}
}
