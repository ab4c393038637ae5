package query

import (
	"strings"

	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Clause renders e for GORM. It returns nil for an empty conjunction.
//
// Single-child And/Or nodes are unwrapped: GORM joins a one-element OrConditions to its
// left neighbour with OR, which would change the meaning of the conjunction.
func Clause(e Expr) clause.Expression {
	switch e.Op {
	case OpEq:
		return clause.Eq{Column: clause.Column{Name: e.Field}, Value: e.Value}
	case OpLike:
		return likeExpr(e, "LIKE")
	case OpNotLike:
		return likeExpr(e, "NOT LIKE")
	case OpAnd, OpOr:
		children := make([]clause.Expression, 0, len(e.Children))
		for _, c := range e.Children {
			if rendered := Clause(c); rendered != nil {
				children = append(children, rendered)
			}
		}
		switch {
		case len(children) == 0:
			if e.Op == OpOr {
				return clause.Expr{SQL: "1 = 0"}
			}
			return nil
		case len(children) == 1:
			return children[0]
		case e.Op == OpAnd:
			return clause.AndConditions{Exprs: children}
		default:
			return clause.OrConditions{Exprs: children}
		}
	default:
		return nil
	}
}

func likeExpr(e Expr, op string) clause.Expression {
	term, _ := e.Value.(string)
	return clause.Expr{
		SQL:  "LOWER(?) " + op + ` ? ESCAPE '\'`,
		Vars: []interface{}{clause.Column{Name: e.Field}, "%" + likeEscaper.Replace(term) + "%"},
	}
}
