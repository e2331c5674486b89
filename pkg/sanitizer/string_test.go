package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Quiet  Pod ", "Quiet Pod"},
		{"\tMeeting\n Room\t4", "Meeting Room 4"},
	}

	for _, c := range cases {
		if got := TrimAndNormalize(c.in); got != c.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Projector", "whiteboard", "PROJECTOR", "", "  "})
	want := []string{"projector", "whiteboard"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNormalizeTags_Empty(t *testing.T) {
	if got := NormalizeTags(nil); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}
	if got := NormalizeTags([]string{"", " "}); got != nil {
		t.Errorf("expected nil for blank input, got %v", got)
	}
}
