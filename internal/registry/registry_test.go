package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tag/internal/config"
	"github.com/vovakirdan/tui-tag/internal/core"
)

type stubGame struct {
	id  string
	cfg config.SimConfig
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) error       { return nil }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Summary() core.RunSummary             { return core.RunSummary{Scenario: g.id} }

func registerStub(id string) {
	Register(id, func(cfg config.SimConfig) Game {
		return &stubGame{id: id, cfg: cfg}
	})
}

func TestRegisterAndCreate(t *testing.T) {
	registerStub("test-create")

	if !Exists("test-create") {
		t.Fatal("Exists(test-create) = false, expected true")
	}

	cfg := config.DefaultSimConfig()
	cfg.Agents.Count = 42
	g, err := Create("test-create", cfg)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if g.ID() != "test-create" {
		t.Errorf("ID() = %q, expected test-create", g.ID())
	}
	if got := g.(*stubGame).cfg.Agents.Count; got != 42 {
		t.Errorf("factory received count %d, expected 42", got)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-scenario", config.DefaultSimConfig()); err == nil {
		t.Error("Create of unknown scenario should fail")
	}
	if Exists("no-such-scenario") {
		t.Error("Exists(no-such-scenario) = true, expected false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	registerStub("test-dup")

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	registerStub("test-dup")
}

func TestListSortedWithTitles(t *testing.T) {
	registerStub("test-list-b")
	registerStub("test-list-a")

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	found := false
	for _, info := range list {
		if info.ID == "test-list-a" {
			found = true
			if info.Title != "Stub test-list-a" {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub test-list-a")
			}
		}
	}
	if !found {
		t.Error("registered scenario missing from List()")
	}
}
