package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry

	r.ConnectionOpened()
	r.ConnectionClosed()
	r.FrameReceived()
	r.FrameMalformed()
	r.Broadcast("chat", 3)
	r.SendDropped()
	r.Command("help")
	r.Reaped()
}

func TestRegistryExposesCollectors(t *testing.T) {
	r := NewRegistry()
	r.ConnectionOpened()
	r.Broadcast("system", 2)
	r.Command("active")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	for _, want := range []string{
		"relaychat_connections_active 1",
		`relaychat_broadcasts_total{kind="system"} 1`,
		"relaychat_deliveries_total 2",
		`relaychat_commands_total{command="active"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.FrameReceived()

	families, err := b.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "relaychat_frames_received_total" {
			if v := f.GetMetric()[0].GetCounter().GetValue(); v != 0 {
				t.Errorf("Expected independent registry to read 0, got %v", v)
			}
		}
	}
}
