package fetcher

import "testing"

func TestParseLocator_FullRange(t *testing.T) {
	target, err := ParseLocator("https://github.com/psf/requests/blob/abc123/requests/api.py#L10-L30", 40)
	if err != nil {
		t.Fatalf("ParseLocator failed: %v", err)
	}
	if target.Owner != "psf" || target.Repo != "requests" || target.Revision != "abc123" {
		t.Errorf("unexpected repo coordinates: %+v", target)
	}
	if target.Path != "requests/api.py" {
		t.Errorf("path: got %q", target.Path)
	}
	if target.Start != 10 || target.End != 30 {
		t.Errorf("range: got %d-%d, want 10-30", target.Start, target.End)
	}
}

func TestParseLocator_StartOnly(t *testing.T) {
	target, err := ParseLocator("https://github.com/a/b/blob/sha/f.py#L7", 40)
	if err != nil {
		t.Fatalf("ParseLocator failed: %v", err)
	}
	if target.Start != 7 || target.End != 47 {
		t.Errorf("range: got %d-%d, want 7-47", target.Start, target.End)
	}
}

func TestParseLocator_NoFragment(t *testing.T) {
	target, err := ParseLocator("https://github.com/a/b/blob/sha/pkg/deep/f.py", 40)
	if err != nil {
		t.Fatalf("ParseLocator failed: %v", err)
	}
	if target.Start != 1 || target.End != 41 {
		t.Errorf("default window: got %d-%d, want 1-41", target.Start, target.End)
	}
	if target.Path != "pkg/deep/f.py" {
		t.Errorf("nested path: got %q", target.Path)
	}
}

func TestParseLocator_Malformed(t *testing.T) {
	bad := []string{
		"https://github.com/a/b/tree/sha/f.py",
		"https://gitlab.com/a/b/blob/sha/f.py",
		"http://github.com/a/b/blob/sha/f.py",
		"not a url at all",
		"https://github.com/a/blob/sha/f.py",
	}
	for _, locator := range bad {
		if _, err := ParseLocator(locator, 40); err == nil {
			t.Errorf("expected parse failure for %q", locator)
		}
	}
}

func TestRawURL(t *testing.T) {
	target, err := ParseLocator("https://github.com/a/b/blob/sha/dir/f.py#L1-L2", 40)
	if err != nil {
		t.Fatalf("ParseLocator failed: %v", err)
	}
	got := target.RawURL("https://raw.githubusercontent.com")
	want := "https://raw.githubusercontent.com/a/b/sha/dir/f.py"
	if got != want {
		t.Errorf("RawURL: got %q, want %q", got, want)
	}
}
