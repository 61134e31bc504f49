package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeRules(t, `{
		"rules": [
			{
				"predicate": "ALL",
				"conditions": [
					{"field": "From", "condition": "contains", "value": ["newsletter", "digest"]},
					{"field": "Received Date", "condition": "older than 30", "value": ""}
				],
				"action": {"type": "Archive"}
			},
			{
				"conditions": [
					{"field": "Subject", "condition": "startswith", "value": "Invoice"}
				],
				"action": {"type": "MoveTo", "folder": "Finance"}
			}
		]
	}`)

	loaded := Load(path, testLogger())
	if len(loaded) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(loaded))
	}

	first := loaded[0]
	if first.Predicate != PredicateAll {
		t.Errorf("Predicate = %v, want ALL", first.Predicate)
	}
	if len(first.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(first.Conditions))
	}
	if first.Conditions[0].Field != FieldFrom || len(first.Conditions[0].Values) != 2 {
		t.Errorf("unexpected first condition: %+v", first.Conditions[0])
	}
	if first.Conditions[1].Field != FieldReceivedDate {
		t.Errorf("expected ReceivedDate field, got %v", first.Conditions[1].Field)
	}
	if _, ok := first.Action.(Archive); !ok {
		t.Errorf("expected Archive action, got %T", first.Action)
	}

	second := loaded[1]
	if second.Predicate != PredicateAny {
		t.Errorf("missing predicate must default to ANY, got %v", second.Predicate)
	}
	// Scalar value decodes as a one-element list
	if len(second.Conditions[0].Values) != 1 || second.Conditions[0].Values[0] != "Invoice" {
		t.Errorf("unexpected values: %v", second.Conditions[0].Values)
	}
	moveTo, ok := second.Action.(MoveTo)
	if !ok || moveTo.Folder != "Finance" {
		t.Errorf("expected MoveTo Finance, got %#v", second.Action)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loaded := Load(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	if len(loaded) != 0 {
		t.Errorf("missing file must yield empty rule set, got %d rules", len(loaded))
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := writeRules(t, `{"rules": [`)
	loaded := Load(path, testLogger())
	if len(loaded) != 0 {
		t.Errorf("corrupt file must yield empty rule set, got %d rules", len(loaded))
	}
}

func TestLoad_UnknownActionKept(t *testing.T) {
	path := writeRules(t, `{
		"rules": [{
			"conditions": [{"field": "From", "condition": "noreply", "value": "x"}],
			"action": {"type": "Forward"}
		}]
	}`)

	loaded := Load(path, testLogger())
	if len(loaded) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(loaded))
	}
	if loaded[0].Action != nil {
		t.Errorf("unknown action type must load as nil, got %#v", loaded[0].Action)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		loaded  []Rule
		wantErr bool
	}{
		{
			name: "well-formed rule",
			loaded: []Rule{{
				Predicate:  PredicateAny,
				Conditions: []Condition{{Field: FieldFrom, Operator: "contains", Values: []string{"x"}}},
				Action:     MarkAsRead{},
			}},
			wantErr: false,
		},
		{
			name: "well-formed date rule",
			loaded: []Rule{{
				Predicate:  PredicateAll,
				Conditions: []Condition{{Field: FieldReceivedDate, Operator: "older than 30"}},
				Action:     Archive{},
			}},
			wantErr: false,
		},
		{
			name: "unknown operator",
			loaded: []Rule{{
				Predicate:  PredicateAny,
				Conditions: []Condition{{Field: FieldFrom, Operator: "matches", Values: []string{"x"}}},
				Action:     MarkAsRead{},
			}},
			wantErr: true,
		},
		{
			name: "unknown field",
			loaded: []Rule{{
				Predicate:  PredicateAny,
				Conditions: []Condition{{Field: FieldUnknown, Operator: "contains", Values: []string{"x"}}},
				Action:     MarkAsRead{},
			}},
			wantErr: true,
		},
		{
			name: "missing action",
			loaded: []Rule{{
				Predicate:  PredicateAny,
				Conditions: []Condition{{Field: FieldFrom, Operator: "contains", Values: []string{"x"}}},
			}},
			wantErr: true,
		},
		{
			name:    "empty conditions",
			loaded:  []Rule{{Predicate: PredicateAny, Action: Archive{}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.loaded)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
