package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/rule"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/schema"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

const testSchemaJSON = `[
	{
		"id": "col_posts",
		"name": "posts",
		"fields": [
			{"name": "title", "type": "text"},
			{"name": "author", "type": "relation", "options": {"collectionId": "col_users"}}
		]
	},
	{
		"id": "col_users",
		"name": "users",
		"fields": [{"name": "email", "type": "email"}]
	}
]`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	if err := s.AddDatabase("test", []byte(testSchemaJSON)); err != nil {
		t.Fatalf("AddDatabase failed: %v", err)
	}
	s.SetCollection("posts")
	return s
}

func TestNewStore(t *testing.T) {
	s := New()
	if s.Operation() != types.OperationList {
		t.Errorf("expected list operation, got %s", s.Operation())
	}
	if s.Rule() != rule.NoConditionsPlaceholder {
		t.Errorf("expected placeholder rule, got %q", s.Rule())
	}
	if len(s.Databases()) != 0 {
		t.Error("expected no databases")
	}
}

func TestAddDatabase(t *testing.T) {
	t.Run("valid export becomes current", func(t *testing.T) {
		s := New()
		if err := s.AddDatabase("main", []byte(testSchemaJSON)); err != nil {
			t.Fatalf("AddDatabase failed: %v", err)
		}
		db, ok := s.CurrentDatabase()
		if !ok || db.Name != "main" {
			t.Fatalf("expected current database main, got %+v", db)
		}
		if len(db.Schemas) != 2 {
			t.Errorf("expected 2 schemas, got %d", len(db.Schemas))
		}
	})

	t.Run("invalid export reports validation error", func(t *testing.T) {
		s := New()
		err := s.AddDatabase("bad", []byte(`{"not":"an array"}`))
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Code != schema.CodeNotAnArray {
			t.Errorf("unexpected code %q", verr.Code)
		}
		if len(s.Databases()) != 0 {
			t.Error("nothing should be imported on validation failure")
		}
	})
}

func TestDeleteDatabase(t *testing.T) {
	s := New()
	s.AddDatabase("first", []byte(testSchemaJSON))
	first, _ := s.CurrentDatabase()
	s.AddDatabase("second", []byte(testSchemaJSON))

	s.DeleteDatabase(s.Databases()[1].ID)
	db, ok := s.CurrentDatabase()
	if !ok || db.ID != first.ID {
		t.Errorf("expected fallback to first database, got %+v", db)
	}

	s.DeleteDatabase(first.ID)
	if _, ok := s.CurrentDatabase(); ok {
		t.Error("expected no current database after deleting the last one")
	}
}

func TestSetCurrentDatabase(t *testing.T) {
	s := New()
	s.AddDatabase("first", []byte(testSchemaJSON))
	first, _ := s.CurrentDatabase()
	s.AddDatabase("second", []byte(testSchemaJSON))
	s.SetCollection("posts")
	s.SetAuthenticated(true)

	if err := s.SetCurrentDatabase(first.ID); err != nil {
		t.Fatalf("SetCurrentDatabase failed: %v", err)
	}
	if s.Collection() != "" {
		t.Error("collection should reset on database switch")
	}
	if s.Config().Authenticated {
		t.Error("configuration should reset on database switch")
	}

	if err := s.SetCurrentDatabase("missing"); !errors.Is(err, types.ErrDatabaseNotFound) {
		t.Errorf("expected ErrDatabaseNotFound, got %v", err)
	}
}

func TestSetOperation(t *testing.T) {
	s := newTestStore(t)
	s.SetAuthenticated(true)

	if err := s.SetOperation(types.OperationUpdate); err != nil {
		t.Fatalf("SetOperation failed: %v", err)
	}
	if s.Operation() != types.OperationUpdate {
		t.Errorf("expected update, got %s", s.Operation())
	}
	if s.Config().Authenticated {
		t.Error("configuration should reset on operation switch")
	}

	if err := s.SetOperation("bogus"); !errors.Is(err, types.ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestRuleRecomputation(t *testing.T) {
	s := newTestStore(t)

	s.SetAuthenticated(true)
	if s.Rule() != `@request.auth.id != ""` {
		t.Errorf("unexpected rule %q", s.Rule())
	}

	s.SetOwnerField("author")
	if s.Rule() != `@request.auth.id != "" && author = @request.auth.id` {
		t.Errorf("unexpected rule %q", s.Rule())
	}

	s.ResetConfiguration()
	if s.Rule() != rule.NoConditionsPlaceholder {
		t.Errorf("expected placeholder after reset, got %q", s.Rule())
	}
}

func TestConditionMutators(t *testing.T) {
	s := newTestStore(t)

	s.AddCustomGroup("checks")
	groups := s.Config().CustomConditions.Groups
	if len(groups) != 1 || groups[0].Name != "checks" {
		t.Fatalf("unexpected groups %+v", groups)
	}

	s.AddCustomCondition(groups[0].ID)
	cond := s.Config().CustomConditions.Groups[0].Conditions[0]

	op1, op2 := "status", "active"
	s.UpdateCustomCondition(groups[0].ID, cond.ID, rule.ConditionPatch{Operand1: &op1, Operand2: &op2})
	if s.Rule() != `(status = "active")` {
		t.Errorf("unexpected rule %q", s.Rule())
	}

	// The classifier sees fields of the active database: "title" is a field
	// of the imported schema, so it stays bare.
	title := "title"
	s.UpdateCustomCondition(groups[0].ID, cond.ID, rule.ConditionPatch{Operand2: &title})
	if s.Rule() != "(status = title)" {
		t.Errorf("expected field reference to stay bare, got %q", s.Rule())
	}

	s.RemoveCustomCondition(groups[0].ID, cond.ID)
	if s.Rule() != rule.NoConditionsPlaceholder {
		t.Errorf("expected placeholder, got %q", s.Rule())
	}

	s.RemoveCustomGroup(groups[0].ID)
	if len(s.Config().CustomConditions.Groups) != 0 {
		t.Error("expected no groups")
	}
}

func TestAbacMutators(t *testing.T) {
	s := newTestStore(t)

	s.AddAbacGroup("attributes")
	g := s.Config().AbacConditions.Groups[0]
	s.AddAbacCondition(g.ID)
	c := s.Config().AbacConditions.Groups[0].Conditions[0]

	op1, op2, op3 := "team_members", "$.canEdit", "true"
	s.UpdateAbacCondition(g.ID, c.ID, rule.ConditionPatch{Operand1: &op1, Operand2: &op2, Operand3: &op3})
	if s.Rule() != "(json_extract(@collection.team_members, '$.canEdit') = true)" {
		t.Errorf("unexpected rule %q", s.Rule())
	}
}

func TestCommitHooks(t *testing.T) {
	s := newTestStore(t)

	var snaps []types.Snapshot
	s.OnCommit(func(snap types.Snapshot) {
		snaps = append(snaps, snap)
	})

	s.SetAuthenticated(true)
	s.SetOwnerField("author")
	if len(snaps) != 2 {
		t.Fatalf("expected 2 hook invocations, got %d", len(snaps))
	}
	if len(snaps[0].Databases) != 1 {
		t.Error("snapshot should carry the databases")
	}
	if snaps[0].CurrentDatabaseID == "" {
		t.Error("snapshot should carry the current database id")
	}
}

func TestLoadSnapshot(t *testing.T) {
	t.Run("does not fire hooks", func(t *testing.T) {
		s := New()
		fired := 0
		s.OnCommit(func(types.Snapshot) { fired++ })
		s.LoadSnapshot(types.Snapshot{})
		if fired != 0 {
			t.Errorf("loading fired %d hooks", fired)
		}
	})

	t.Run("unknown current id falls back to first database", func(t *testing.T) {
		donor := New()
		donor.AddDatabase("a", []byte(testSchemaJSON))
		snap := donor.Snapshot()
		snap.CurrentDatabaseID = "gone"

		s := New()
		s.LoadSnapshot(snap)
		db, ok := s.CurrentDatabase()
		if !ok || db.Name != "a" {
			t.Errorf("expected fallback to first database, got %+v", db)
		}
	})

	t.Run("normalizes persisted shapes", func(t *testing.T) {
		snap := types.Snapshot{
			Databases: []types.Database{{
				Name: "legacy",
				Presets: []types.Preset{{
					Name: "p",
					Rules: map[string]map[types.Operation]types.RuleConfig{
						"posts": {
							types.OperationList: {
								CustomConditions: types.GroupedConditions{Groups: []types.ConditionGroup{{
									Conditions: []types.Condition{{Operand1: "a", Operand2: "1"}},
								}}},
							},
						},
					},
				}},
			}},
		}

		s := New()
		s.LoadSnapshot(snap)
		db, _ := s.CurrentDatabase()
		if db.ID == "" {
			t.Error("expected regenerated database id")
		}
		g := db.Presets[0].Rules["posts"][types.OperationList].CustomConditions.Groups[0]
		if g.ID == "" || g.Name == "" {
			t.Errorf("expected repaired group, got %+v", g)
		}
		if g.InternalLogic != types.LogicAnd || g.Logic != types.LogicAnd {
			t.Error("expected logic defaults")
		}
		if g.Conditions[0].ID == "" || g.Conditions[0].Operator != "=" {
			t.Errorf("expected repaired condition, got %+v", g.Conditions[0])
		}
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.SetAuthenticated(true)
	s.SavePreset("mine")

	restored := New()
	restored.LoadSnapshot(s.Snapshot())

	if len(restored.Databases()) != 1 {
		t.Fatalf("expected 1 database, got %d", len(restored.Databases()))
	}
	if got := restored.Presets(); len(got) != 1 || got[0].Name != "mine" {
		t.Errorf("presets lost in round trip: %+v", got)
	}
	if !strings.Contains(restored.Graph().CollectionNames()[0], "posts") {
		t.Error("schemas lost in round trip")
	}
}
