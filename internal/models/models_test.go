package models

import "testing"

func TestApplicationTransitions(t *testing.T) {
	tests := []struct {
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{ApplicationPending, ApplicationRecommended, true},
		{ApplicationPending, ApplicationHired, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationRecommended, ApplicationHired, true},
		{ApplicationRecommended, ApplicationRejected, true},
		{ApplicationRecommended, ApplicationPending, false},
		{ApplicationHired, ApplicationRejected, false},
		{ApplicationRejected, ApplicationHired, false},
		{ApplicationRejected, ApplicationPending, false},
		{ApplicationPending, ApplicationStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	if !ApplicationHired.Terminal() || !ApplicationRejected.Terminal() {
		t.Fatalf("hired and rejected must be terminal")
	}
	if ApplicationPending.Terminal() || ApplicationRecommended.Terminal() {
		t.Fatalf("pending and recommended must not be terminal")
	}
	if ApplicationStatus("unknown").Valid() {
		t.Fatalf("unknown status reported valid")
	}
}

func TestWorkerWantsCategory(t *testing.T) {
	w := Worker{JobTypes: []string{"경비", "주차관리"}}
	if !w.WantsCategory("경비") {
		t.Errorf("expected match on 경비")
	}
	if w.WantsCategory("청소") {
		t.Errorf("unexpected match on 청소")
	}
	if w.WantsCategory("") {
		t.Errorf("empty category must not match")
	}
	if (Worker{}).WantsCategory("경비") {
		t.Errorf("worker without job types must not match")
	}
}

func TestCategories(t *testing.T) {
	for _, c := range []string{"", "all", "전체"} {
		if !IsAllCategories(c) {
			t.Errorf("%q should be the wildcard", c)
		}
	}
	if !IsKnownCategory("배달/운송") || !IsKnownCategory("경비") {
		t.Errorf("known categories rejected")
	}
	if IsKnownCategory("요리사") {
		t.Errorf("unknown category accepted")
	}
}
