package store

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/recordkit"
)

// ClauseOp is the comparison a single condition clause performs
type ClauseOp string

const (
	ClauseExists    ClauseOp = "attribute_exists"
	ClauseNotExists ClauseOp = "attribute_not_exists"
	ClauseEquals    ClauseOp = "="
)

// Clause is one AND-ed term of a parsed condition expression, with its
// placeholders resolved
type Clause struct {
	Attribute string
	Op        ClauseOp
	Value     types.AttributeValue
}

var (
	existsPattern    = regexp.MustCompile(`^attribute_exists\((#\w+)\)$`)
	notExistsPattern = regexp.MustCompile(`^attribute_not_exists\((#\w+)\)$`)
	equalsPattern    = regexp.MustCompile(`^(#\w+) = (:\w+)$`)
)

// ParseCondition parses the subset of the DynamoDB condition grammar that
// recordkit.CompileCondition emits: existence checks and equality joined by
// AND. Like DynamoDB, it rejects a present but empty value map and
// placeholders that are not defined.
func ParseCondition(cond *recordkit.CompiledCondition) ([]Clause, error) {
	if cond == nil {
		return nil, nil
	}
	if strings.TrimSpace(cond.Expression) == "" {
		return nil, fmt.Errorf("condition expression must not be empty")
	}
	if cond.ExpressionValues != nil && len(cond.ExpressionValues) == 0 {
		return nil, fmt.Errorf("expression attribute values must not be empty")
	}

	usedValues := make(map[string]bool)
	var clauses []Clause

	for _, term := range strings.Split(cond.Expression, " AND ") {
		term = strings.TrimSpace(term)

		var (
			clause Clause
			name   string
		)
		if m := existsPattern.FindStringSubmatch(term); m != nil {
			clause.Op, name = ClauseExists, m[1]
		} else if m := notExistsPattern.FindStringSubmatch(term); m != nil {
			clause.Op, name = ClauseNotExists, m[1]
		} else if m := equalsPattern.FindStringSubmatch(term); m != nil {
			clause.Op, name = ClauseEquals, m[1]
			value, ok := cond.ExpressionValues[m[2]]
			if !ok {
				return nil, fmt.Errorf("undefined expression attribute value %s", m[2])
			}
			clause.Value = value
			usedValues[m[2]] = true
		} else {
			return nil, fmt.Errorf("unsupported condition term %q", term)
		}

		attr, ok := cond.ExpressionNames[name]
		if !ok {
			return nil, fmt.Errorf("undefined expression attribute name %s", name)
		}
		clause.Attribute = attr
		clauses = append(clauses, clause)
	}

	for placeholder := range cond.ExpressionValues {
		if !usedValues[placeholder] {
			return nil, fmt.Errorf("unused expression attribute value %s", placeholder)
		}
	}

	return clauses, nil
}

// Evaluate reports whether every clause holds against existing, which is nil
// when no item is stored under the key
func Evaluate(clauses []Clause, existing recordkit.Item) bool {
	for _, c := range clauses {
		current, present := existing[c.Attribute]
		switch c.Op {
		case ClauseExists:
			if !present {
				return false
			}
		case ClauseNotExists:
			if present {
				return false
			}
		case ClauseEquals:
			if !present || !reflect.DeepEqual(current, c.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
