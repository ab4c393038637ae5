// Package query builds the recipe search predicate.
//
// A search is a tree of Expr nodes: Eq, Like and NotLike leaves combined with And and Or.
// The same tree is rendered to GORM clauses for the store and can be evaluated in memory
// with Matches.
package query

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/recipes-service/internal/model"
)

// Op tags the kind of an Expr node.
type Op int

const (
	OpEq Op = iota
	OpLike
	OpNotLike
	OpAnd
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpLike:
		return "like"
	case OpNotLike:
		return "not_like"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Expr is a node of the predicate tree. Leaves use Field and Value, And/Or use Children.
// Like and NotLike hold an already lower-cased string term.
type Expr struct {
	Op       Op
	Field    string
	Value    any
	Children []Expr
}

// Eq matches rows whose field equals value exactly.
func Eq(field string, value any) Expr {
	return Expr{Op: OpEq, Field: field, Value: value}
}

// Like matches rows whose field contains term, ignoring case.
func Like(field, term string) Expr {
	return Expr{Op: OpLike, Field: field, Value: Fold(term)}
}

// NotLike matches rows whose field does not contain term, ignoring case.
func NotLike(field, term string) Expr {
	return Expr{Op: OpNotLike, Field: field, Value: Fold(term)}
}

// And matches when every child matches. An empty And matches everything.
func And(children ...Expr) Expr {
	return Expr{Op: OpAnd, Children: children}
}

// Or matches when at least one child matches. An empty Or matches nothing.
func Or(children ...Expr) Expr {
	return Expr{Op: OpOr, Children: children}
}

// IsEmpty reports whether e places no constraint at all.
func (e Expr) IsEmpty() bool {
	return e.Op == OpAnd && len(e.Children) == 0
}

// Matches evaluates e against a stored row.
func (e Expr) Matches(r model.Recipe) bool {
	switch e.Op {
	case OpEq:
		return fieldValue(r, e.Field) == e.Value
	case OpLike:
		return containsFold(r, e)
	case OpNotLike:
		return !containsFold(r, e)
	case OpAnd:
		for _, c := range e.Children {
			if !c.Matches(r) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range e.Children {
			if c.Matches(r) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (e Expr) String() string {
	switch e.Op {
	case OpEq, OpLike, OpNotLike:
		return fmt.Sprintf("%s(%s, %v)", e.Op, e.Field, e.Value)
	default:
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("%s(%s)", e.Op, strings.Join(parts, ", "))
	}
}

func containsFold(r model.Recipe, e Expr) bool {
	text, ok := fieldValue(r, e.Field).(string)
	if !ok {
		return false
	}
	term, _ := e.Value.(string)
	return strings.Contains(Fold(text), term)
}

func fieldValue(r model.Recipe, field string) any {
	switch field {
	case model.ColumnVegetarian:
		return r.Vegetarian
	case model.ColumnServings:
		return r.Servings
	case model.ColumnIngredients:
		return r.Ingredients
	case model.ColumnInstructions:
		return r.Instructions
	case model.ColumnName:
		return r.Name
	default:
		return nil
	}
}

// Fold lower-cases s the way search terms and searched columns are compared. The SQLite
// connection registers it as LOWER so stored text folds identically.
// Casers carry state, so one is made per call.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
