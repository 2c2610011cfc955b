// Package validate checks inbound payloads before they reach the service
// layer. Each payload type has a fixed, ordered list of rules that are all
// evaluated, so a response reports every failure at once instead of only
// the first.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/erazemk/opravila/internal/ordering"
)

// Errors maps a field name to the message of every rule it failed.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no rule failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// lengthBetween reports whether s is min to max characters long. Lengths
// count characters, not bytes, so multibyte names measure as typed.
func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// rule pairs a failing predicate with the field and message it reports.
type rule struct {
	field   string
	message string
	failed  func() bool
}

// run evaluates every rule in order, accumulating all failures.
func run(rules []rule) Errors {
	errs := Errors{}
	for _, r := range rules {
		if r.failed() {
			errs.add(r.field, r.message)
		}
	}
	return errs
}

// CreateTodo validates a creation payload: name is required and must be
// 3-50 characters; description, when sent, must be 3-100 characters.
func CreateTodo(name string, description *string) Errors {
	return run([]rule{
		{"name", "Todo name is required", func() bool {
			return strings.TrimSpace(name) == ""
		}},
		{"name", "Todo name must be between 3 and 50 characters", func() bool {
			return strings.TrimSpace(name) != "" && !lengthBetween(name, 3, 50)
		}},
		{"description", "Todo description must be between 3 and 100 characters", func() bool {
			return description != nil && !lengthBetween(*description, 3, 100)
		}},
	})
}

// UpdateTodo validates a partial-update payload. Absent fields are allowed;
// whitespace-only strings count as absent, matching the service layer.
func UpdateTodo(name, description *string) Errors {
	return run([]rule{
		{"name", "Todo name must be between 3 and 50 characters", func() bool {
			return name != nil && strings.TrimSpace(*name) != "" &&
				!lengthBetween(*name, 3, 50)
		}},
		{"description", "Todo description must be between 3 and 100 characters", func() bool {
			return description != nil && strings.TrimSpace(*description) != "" &&
				!lengthBetween(*description, 3, 100)
		}},
	})
}

// Reorder validates a reorder batch: it must be non-empty and free of
// duplicate ids and duplicate positions, and every pair needs an id and a
// non-negative position. Zero is a valid explicit position.
func Reorder(placements []ordering.Placement) Errors {
	errs := run([]rule{
		{"todos", "Todos is empty", func() bool {
			return len(placements) == 0
		}},
		{"todos", "Todos must not contain duplicate ids", func() bool {
			seen := make(map[uuid.UUID]bool, len(placements))
			for _, p := range placements {
				if seen[p.ID] {
					return true
				}
				seen[p.ID] = true
			}
			return false
		}},
		{"todos", "Todos must not contain duplicate positions", func() bool {
			seen := make(map[int]bool, len(placements))
			for _, p := range placements {
				if seen[p.Position] {
					return true
				}
				seen[p.Position] = true
			}
			return false
		}},
	})

	for i, p := range placements {
		if p.ID == uuid.Nil {
			errs.add(fmt.Sprintf("todos[%d].id", i), "Todo Id is required")
		}
		if p.Position < 0 {
			errs.add(fmt.Sprintf("todos[%d].position", i), "Position must be greater than or equal to 0")
		}
	}

	return errs
}
