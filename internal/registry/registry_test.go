package registry

import (
	"testing"

	"github.com/Ikbal01/tanks-game/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string                           { return s.id }
func (s *stubGame) Title() string                        { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig)             {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen)                  {}
func (s *stubGame) State() core.GameState                { return core.GameState{} }

type stubMulti struct{ stubGame }

func (s *stubMulti) StepMulti(core.MultiInputFrame) core.StepResult { return core.StepResult{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })
	Register("stub_b", func() Game { return &stubMulti{stubGame{id: "stub_b"}} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should be registered")
	}
	if Exists("missing") {
		t.Error("missing should not be registered")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID() = %q, want stub_a", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create of an unknown game should fail")
	}

	if _, err := CreateMulti("stub_a"); err == nil {
		t.Error("CreateMulti of a single player game should fail")
	}
	if _, err := CreateMulti("stub_b"); err != nil {
		t.Errorf("CreateMulti: %v", err)
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "stub_b" && info.Title != "Stub stub_b" {
			t.Errorf("title = %q, want %q", info.Title, "Stub stub_b")
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
