package main

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-tag/internal/config"
	"github.com/vovakirdan/tui-tag/internal/core"
	"github.com/vovakirdan/tui-tag/internal/game"
	"github.com/vovakirdan/tui-tag/internal/metrics"
	"github.com/vovakirdan/tui-tag/internal/registry"
)

func newWorldGame(t *testing.T, id string) worldGame {
	t.Helper()
	created, err := registry.Create(id, config.DefaultSimConfig())
	if err != nil {
		t.Fatalf("Create(%q) error: %v", id, err)
	}
	g, ok := created.(worldGame)
	if !ok {
		t.Fatalf("scenario %q does not expose a world", id)
	}
	rc := core.RuntimeConfig{ScreenW: 60, ScreenH: 20 + game.HUDHeight, TickRate: 30, Seed: 3}
	if err := g.Reset(rc); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	return g
}

func TestEveryScenarioExposesWorld(t *testing.T) {
	for _, info := range registry.List() {
		newWorldGame(t, info.ID)
	}
}

func TestRunHeadless(t *testing.T) {
	g := newWorldGame(t, "crowd")

	done, err := runHeadless(context.Background(), g, headlessOptions{Ticks: 200, Check: true})
	if err != nil {
		t.Fatalf("runHeadless error: %v", err)
	}
	if done != 200 {
		t.Errorf("ticks done = %d, expected 200", done)
	}
	if got := g.Summary().Ticks; got != 200 {
		t.Errorf("Summary().Ticks = %d, expected 200", got)
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	g := newWorldGame(t, "classic")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done, err := runHeadless(ctx, g, headlessOptions{Ticks: 1000})
	if err != nil {
		t.Fatalf("runHeadless error: %v", err)
	}
	if done != 0 {
		t.Errorf("ticks done after cancel = %d, expected 0", done)
	}
}

func TestRunHeadlessRecordsMetrics(t *testing.T) {
	g := newWorldGame(t, "packed")
	c, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := runHeadless(context.Background(), g, headlessOptions{Ticks: 50, Collector: c}); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(c.Ticks.WithLabelValues("packed")); got != 50 {
		t.Errorf("tag_ticks_total = %v, expected 50", got)
	}
	want := float64(g.Summary().Transfers)
	if got := testutil.ToFloat64(c.Transfers.WithLabelValues("packed")); got != want {
		t.Errorf("tag_transfers_total = %v, expected %v", got, want)
	}
}

func TestDensityCases(t *testing.T) {
	small := densityCases(false)
	if len(small) != 8 {
		t.Errorf("default cases = %d, expected 8", len(small))
	}
	for _, c := range small {
		if c.Agents > c.Size*c.Size {
			t.Errorf("case %+v does not fit its grid", c)
		}
	}

	large := densityCases(true)
	if len(large) != 12 {
		t.Errorf("cases with --large = %d, expected 12", len(large))
	}
	if last := large[len(large)-1]; last.Size != 10_000 || last.Agents != 1_000_000 {
		t.Errorf("last large case = %+v, expected 10000/1000000", last)
	}
}

func TestMeasure(t *testing.T) {
	res, err := measure(benchCase{Size: 100, Agents: 80}, 10, 1)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if res.PerTick <= 0 || res.PerTick > time.Second {
		t.Errorf("PerTick = %v, expected a small positive duration", res.PerTick)
	}

	if _, err := measure(benchCase{Size: 2, Agents: 5}, 1, 1); err == nil {
		t.Error("overcrowded case should fail")
	}
}
