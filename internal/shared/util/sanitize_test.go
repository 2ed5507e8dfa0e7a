package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	if _, err := SanitizeFileName("../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := SanitizeFileName("  "); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	got, err := SanitizeFileName("dir/scan.png")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "dir_scan.png" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeUserKey(t *testing.T) {
	cases := map[string]string{
		"user-42":   "user-42",
		"тест":      "____",
		"a/b..c":    "a_b__c",
		"":          "_",
		"tg:123456": "tg_123456",
	}
	for in, want := range cases {
		if got := SanitizeUserKey(in); got != want {
			t.Fatalf("SanitizeUserKey(%q) = %q, want %q", in, got, want)
		}
	}
}
