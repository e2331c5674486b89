package model

import (
	"reflect"
	"testing"
)

func TestHasFacilities(t *testing.T) {
	ws := &Workspace{Facilities: []string{"projector", "whiteboard", "video_conference"}}

	tests := []struct {
		name     string
		required []string
		want     bool
	}{
		{"empty requirement", nil, true},
		{"subset", []string{"projector"}, true},
		{"full set", []string{"projector", "whiteboard", "video_conference"}, true},
		{"missing one", []string{"projector", "standing_desk"}, false},
		{"all missing", []string{"standing_desk"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ws.HasFacilities(tt.required); got != tt.want {
				t.Errorf("HasFacilities(%v) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestMissingFacilities_PreservesRequestOrder(t *testing.T) {
	ws := &Workspace{Facilities: []string{"whiteboard"}}

	missing := ws.MissingFacilities([]string{"standing_desk", "whiteboard", "projector"})
	want := []string{"standing_desk", "projector"}

	if !reflect.DeepEqual(missing, want) {
		t.Errorf("MissingFacilities() = %v, want %v", missing, want)
	}
}

func TestMissingFacilities_NoneMissing(t *testing.T) {
	ws := &Workspace{Facilities: []string{"projector"}}

	if missing := ws.MissingFacilities([]string{"projector"}); missing != nil {
		t.Errorf("expected nil for satisfied requirements, got %v", missing)
	}
}
