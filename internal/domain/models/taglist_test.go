package models

import (
	"encoding/json"
	"testing"
)

func TestTagListAcceptsCommaString(t *testing.T) {
	var in PortfolioInput
	if err := json.Unmarshal([]byte(`{"title":"x","tags":" wedding, ,drone ,"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in.Tags) != 2 || in.Tags[0] != "wedding" || in.Tags[1] != "drone" {
		t.Fatalf("unexpected tags %#v", in.Tags)
	}
}

func TestTagListAcceptsArray(t *testing.T) {
	var in PortfolioInput
	if err := json.Unmarshal([]byte(`{"tags":["a"," b ",""]}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in.Tags) != 2 || in.Tags[1] != "b" {
		t.Fatalf("unexpected tags %#v", in.Tags)
	}
}

func TestBookingStatsUploadRate(t *testing.T) {
	if got := (BookingStats{}).UploadRate(); got != 0 {
		t.Fatalf("empty stats rate = %d", got)
	}
	if got := (BookingStats{Total: 3, WithImage: 2}).UploadRate(); got != 67 {
		t.Fatalf("rate = %d, want 67", got)
	}
}

func TestContentMapRoundTrip(t *testing.T) {
	c := SiteContent{HeroHeadline: "Stories in motion", ContactEmail: "hi@cinecraft.media"}
	back := ContentFromMap(c.ToMap())
	if back.HeroHeadline != c.HeroHeadline || back.ContactEmail != c.ContactEmail {
		t.Fatalf("round trip lost data: %#v", back)
	}
}
