package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ruleFile mirrors the on-disk JSON layout: {"rules": [...]}
type ruleFile struct {
	Rules []ruleRecord `json:"rules"`
}

type ruleRecord struct {
	Predicate  string            `json:"predicate"`
	Conditions []conditionRecord `json:"conditions"`
	Action     *actionRecord     `json:"action"`
}

type conditionRecord struct {
	Field     string     `json:"field"`
	Condition string     `json:"condition"`
	Value     stringList `json:"value"`
}

type actionRecord struct {
	Type   string `json:"type"`
	Folder string `json:"folder"`
	Label  string `json:"label"`
}

// stringList accepts either a single JSON string or an array of strings
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

// Load reads the rule file at path. A missing or corrupt file yields an
// empty rule set: the run continues and simply matches nothing. Rules with
// suspicious operators or fields are kept (they evaluate to false) but
// flagged in the log so authoring mistakes are visible.
func Load(path string, log *logrus.Logger) []Rule {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("rules file unavailable, continuing with empty rule set")
		return nil
	}

	var file ruleFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.WithError(err).Warn("rules file malformed, continuing with empty rule set")
		return nil
	}

	loaded := make([]Rule, 0, len(file.Rules))
	for i, rec := range file.Rules {
		rule := Rule{Predicate: ParsePredicate(rec.Predicate)}

		for _, c := range rec.Conditions {
			cond := Condition{
				Field:    ParseField(c.Field),
				Operator: c.Condition,
				Values:   []string(c.Value),
			}
			if warning := checkCondition(cond, c.Field); warning != "" {
				log.WithField("rule", i+1).Warn(warning)
			}
			rule.Conditions = append(rule.Conditions, cond)
		}

		if rec.Action != nil {
			rule.Action = buildAction(*rec.Action)
			if rule.Action == nil {
				log.WithFields(logrus.Fields{"rule": i + 1, "type": rec.Action.Type}).
					Warn("unknown action type, rule will match but perform nothing")
			}
		}

		loaded = append(loaded, rule)
	}

	log.WithFields(logrus.Fields{"path": path, "rules": len(loaded)}).Info("loaded rules")
	return loaded
}

func buildAction(rec actionRecord) Action {
	switch rec.Type {
	case "MarkAsRead":
		return MarkAsRead{}
	case "Archive":
		return Archive{}
	case "MoveTo":
		return MoveTo{Folder: rec.Folder}
	case "CreateLabel":
		return CreateLabel{Label: rec.Label}
	default:
		return nil
	}
}

var textOperators = map[string]bool{
	"contains":   true,
	"startswith": true,
	"endswith":   true,
	"equals":     true,
	"noreply":    true,
}

// checkCondition returns a human-readable warning for conditions the
// evaluators will silently resolve to false, or "" when the condition looks
// well-formed.
func checkCondition(cond Condition, rawField string) string {
	op := strings.ToLower(cond.Operator)

	switch cond.Field {
	case FieldFrom, FieldSubject:
		if !textOperators[op] {
			return fmt.Sprintf("unknown operator %q for field %q", cond.Operator, rawField)
		}
	case FieldReceivedDate:
		if !strings.HasPrefix(op, "last") && !strings.HasPrefix(op, "older than") &&
			op != "month" && op != "year" && op != "equals" {
			return fmt.Sprintf("unknown date operator %q", cond.Operator)
		}
	default:
		return fmt.Sprintf("unknown field %q", rawField)
	}
	return ""
}

// Validate enforces strict rule-file hygiene: every field, operator, and
// action must be recognized. The default (permissive) mode never calls this;
// it exists for the rules.strict config option so authoring bugs fail loudly
// instead of degrading to non-matches.
func Validate(loaded []Rule) error {
	var errs []error

	for i, rule := range loaded {
		if len(rule.Conditions) == 0 {
			errs = append(errs, fmt.Errorf("rule %d: no conditions", i+1))
		}
		for j, cond := range rule.Conditions {
			if warning := checkCondition(cond, cond.Field.String()); warning != "" {
				errs = append(errs, fmt.Errorf("rule %d condition %d: %s", i+1, j+1, warning))
			}
		}
		if rule.Action == nil {
			errs = append(errs, fmt.Errorf("rule %d: missing or unknown action", i+1))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
