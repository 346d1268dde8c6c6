package recordkit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// Predicate is a single check on one attribute of the existing item.
// Implementations are AttributeExists and AttributeEquals.
type Predicate interface {
	predicate()
}

// AttributeExists requires the attribute to be present (true) or absent (false)
type AttributeExists bool

func (AttributeExists) predicate() {}

// AttributeEquals requires the attribute to equal Value
type AttributeEquals struct {
	Value interface{}
}

func (AttributeEquals) predicate() {}

// ConditionSpec maps attribute names to the predicate each must satisfy.
// All predicates are combined with AND.
type ConditionSpec map[string]Predicate

// CompiledCondition is a condition in the store's native expression form
type CompiledCondition struct {
	Expression       string            `json:"expression"`
	ExpressionNames  map[string]string `json:"expressionNames,omitempty"`
	ExpressionValues Item              `json:"expressionValues,omitempty"`
}

// NotExistsCondition builds a spec requiring every attribute to be absent
func NotExistsCondition(attrs ...string) ConditionSpec {
	spec := make(ConditionSpec, len(attrs))
	for _, attr := range attrs {
		spec[attr] = AttributeExists(false)
	}
	return spec
}

// CompileCondition compiles spec into a native condition expression.
// A nil or empty spec compiles to a nil condition, meaning none is attached.
// Attributes are emitted in sorted order so the output is deterministic.
func CompileCondition(spec ConditionSpec) (*CompiledCondition, error) {
	if len(spec) == 0 {
		return nil, nil
	}

	attrs := make([]string, 0, len(spec))
	for attr := range spec {
		if attr == "" {
			return nil, fmt.Errorf("condition attribute name must not be empty")
		}
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	cond := &CompiledCondition{
		ExpressionNames:  make(map[string]string, len(attrs)),
		ExpressionValues: make(Item),
	}
	used := make(map[string]bool, len(attrs))
	clauses := make([]string, 0, len(attrs))

	for _, attr := range attrs {
		alias := placeholder(attr, used)
		name := "#" + alias
		cond.ExpressionNames[name] = attr

		switch p := spec[attr].(type) {
		case AttributeExists:
			if p {
				clauses = append(clauses, fmt.Sprintf("attribute_exists(%s)", name))
			} else {
				clauses = append(clauses, fmt.Sprintf("attribute_not_exists(%s)", name))
			}
		case AttributeEquals:
			av, err := attributevalue.Marshal(p.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal condition value for %s: %w", attr, err)
			}
			value := ":" + alias
			cond.ExpressionValues[value] = av
			clauses = append(clauses, fmt.Sprintf("%s = %s", name, value))
		case nil:
			return nil, fmt.Errorf("condition for %s has no predicate", attr)
		default:
			return nil, fmt.Errorf("unsupported predicate %T for %s", p, attr)
		}
	}

	cond.Expression = strings.Join(clauses, " AND ")

	// Some backends reject a present but empty value map.
	if len(cond.ExpressionValues) == 0 {
		cond.ExpressionValues = nil
	}

	return cond, nil
}

// placeholder derives a unique expression alias for attr
func placeholder(attr string, used map[string]bool) string {
	var b strings.Builder
	for _, r := range attr {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	base := b.String()
	alias := base
	for n := 1; used[alias]; n++ {
		alias = base + "_" + strconv.Itoa(n)
	}
	used[alias] = true
	return alias
}
