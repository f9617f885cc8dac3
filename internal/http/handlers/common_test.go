package handlers

import (
	"encoding/json"
	"testing"
)

func TestStringishAcceptsNumbersAndStrings(t *testing.T) {
	var p bookingPayload
	if err := json.Unmarshal([]byte(`{"service_id": 3}`), &p); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if id := p.input().ServiceID; id == nil || *id != 3 {
		t.Fatalf("expected service id 3, got %v", id)
	}

	p = bookingPayload{}
	if err := json.Unmarshal([]byte(`{"service_id": "2"}`), &p); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if id := p.input().ServiceID; id == nil || *id != 2 {
		t.Fatalf("expected service id 2, got %v", id)
	}
}

func TestBookingPayloadTreatsSlugAsService(t *testing.T) {
	var p bookingPayload
	if err := json.Unmarshal([]byte(`{"service_id": "fpv-drones"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	in := p.input()
	if in.ServiceID != nil {
		t.Fatalf("slug must not parse as id, got %d", *in.ServiceID)
	}
	if in.Service != "fpv-drones" {
		t.Fatalf("expected slug carried as service, got %q", in.Service)
	}
}

func TestStringishNull(t *testing.T) {
	var p bookingPayload
	if err := json.Unmarshal([]byte(`{"service_id": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.input().ServiceID != nil || p.input().Service != "" {
		t.Fatalf("null should leave service empty: %+v", p.input())
	}
}
