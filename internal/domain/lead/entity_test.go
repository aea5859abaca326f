package lead

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to LeadStatus
		want     bool
	}{
		{StatusNew, StatusContacted, true},
		{StatusNew, StatusLost, true},
		{StatusNew, StatusQualified, false},
		{StatusNew, StatusWon, false},
		{StatusContacted, StatusQualified, true},
		{StatusQualified, StatusWon, true},
		{StatusQualified, StatusLost, true},
		{StatusWon, StatusLost, false},
		{StatusLost, StatusContacted, false},
		{StatusContacted, StatusNew, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
