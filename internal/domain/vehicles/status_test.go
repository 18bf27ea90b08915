package vehicles

import (
	"errors"
	"testing"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func lastDaysAgo(days int) *string {
	s := timefmt.Format(testNow.AddDate(0, 0, -days))
	return &s
}

func TestClassify_TierBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want Tier
	}{
		{0, TierOK},
		{6, TierOK},
		{7, TierWarning},
		{13, TierWarning},
		{14, TierCritical},
		{30, TierCritical},
	}

	for _, c := range cases {
		info, err := Classify(lastDaysAgo(c.days), testNow)
		if err != nil {
			t.Fatalf("days=%d: unexpected error: %v", c.days, err)
		}
		if info.Tier != c.want {
			t.Fatalf("days=%d: tier = %s, want %s", c.days, info.Tier, c.want)
		}
		if info.Days == nil || *info.Days != c.days {
			t.Fatalf("days=%d: Days = %v", c.days, info.Days)
		}
	}
}

func TestClassify_FutureTimestampIsOK(t *testing.T) {
	info, err := Classify(lastDaysAgo(-3), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Tier != TierOK {
		t.Fatalf("future timestamp: tier = %s, want ok", info.Tier)
	}
	if info.Days == nil || *info.Days >= 0 {
		t.Fatalf("future timestamp: Days = %v, want negative", info.Days)
	}
}

func TestClassify_PartialDaysFloor(t *testing.T) {
	// 6 days and 23 hours is still day 6, so still ok.
	s := timefmt.Format(testNow.Add(-(6*24 + 23) * time.Hour))
	info, err := Classify(&s, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Days == nil || *info.Days != 6 {
		t.Fatalf("Days = %v, want 6", info.Days)
	}
	if info.Tier != TierOK {
		t.Fatalf("tier = %s, want ok", info.Tier)
	}
}

func TestClassify_NoMaintenance(t *testing.T) {
	info, err := Classify(nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Tier != TierUnknown {
		t.Fatalf("tier = %s, want unknown", info.Tier)
	}
	if info.Days != nil {
		t.Fatalf("Days = %v, want nil", info.Days)
	}
	if info.Message != "no maintenance recorded" {
		t.Fatalf("message = %q", info.Message)
	}
}

func TestClassify_PlainLayout(t *testing.T) {
	s := testNow.AddDate(0, 0, -14).Format(timefmt.LayoutPlain)
	info, err := Classify(&s, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Tier != TierCritical {
		t.Fatalf("tier = %s, want critical", info.Tier)
	}
}

func TestClassify_Malformed(t *testing.T) {
	s := "not-a-date"
	_, err := Classify(&s, testNow)
	if !errors.Is(err, timefmt.ErrMalformedTimestamp) {
		t.Fatalf("err = %v, want ErrMalformedTimestamp", err)
	}
}
