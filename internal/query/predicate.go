// Package query implements the listing engine: dynamic predicate
// composition, sort resolution and pagination arithmetic. Predicates are
// built as small expression trees and rendered to parameterized SQL executed
// by the user repository.
package query

import (
	"strconv"
	"strings"

	"github.com/userdesk/userdesk/internal/models"
)

// Combinator selects how the optional text filters join: the listing
// endpoint requires every supplied filter to match (All), the search
// endpoint matches any of them (Any). Role constraints always AND with the
// rest regardless of combinator.
type Combinator int

const (
	All Combinator = iota
	Any
)

// Filter is the request-scoped set of optional filter inputs. Zero values
// mean "absent": an absent filter contributes no predicate node at all.
type Filter struct {
	FullName   string
	Email      string
	Role       models.Role
	Roles      []models.Role
	Combinator Combinator
}

// node is one branch of a predicate expression tree.
type node interface {
	render(sb *strings.Builder, args *[]any)
}

// containsNode matches a case-insensitive substring of a column.
type containsNode struct {
	column string
	needle string
}

func (n containsNode) render(sb *strings.Builder, args *[]any) {
	*args = append(*args, "%"+escapeLike(n.needle)+"%")
	sb.WriteString(n.column)
	sb.WriteString(" ILIKE $")
	sb.WriteString(strconv.Itoa(len(*args)))
}

// eqNode matches a column exactly.
type eqNode struct {
	column string
	value  any
}

func (n eqNode) render(sb *strings.Builder, args *[]any) {
	*args = append(*args, n.value)
	sb.WriteString(n.column)
	sb.WriteString(" = $")
	sb.WriteString(strconv.Itoa(len(*args)))
}

// inNode matches a column against a set of values.
type inNode struct {
	column string
	values []string
}

func (n inNode) render(sb *strings.Builder, args *[]any) {
	*args = append(*args, n.values)
	sb.WriteString(n.column)
	sb.WriteString(" = ANY($")
	sb.WriteString(strconv.Itoa(len(*args)))
	sb.WriteString(")")
}

// groupNode joins child branches with AND or OR. Rendering parenthesizes the
// group so OR branches never leak into an enclosing AND.
type groupNode struct {
	op       string // "AND" or "OR"
	children []node
}

func (n groupNode) render(sb *strings.Builder, args *[]any) {
	if len(n.children) == 1 {
		n.children[0].render(sb, args)
		return
	}
	sb.WriteString("(")
	for i, child := range n.children {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(n.op)
			sb.WriteString(" ")
		}
		child.render(sb, args)
	}
	sb.WriteString(")")
}

// Predicate is an executable boolean expression over user records. The zero
// value is the universal predicate, matching every record.
type Predicate struct {
	root node
}

// Universal reports whether the predicate matches every record.
func (p Predicate) Universal() bool {
	return p.root == nil
}

// SQL renders the predicate to a WHERE-clause body with $1-based
// placeholders and the matching bind arguments. The universal predicate
// renders to an empty clause. Rendering is deterministic for a given tree.
func (p Predicate) SQL() (string, []any) {
	if p.root == nil {
		return "", nil
	}
	var sb strings.Builder
	args := make([]any, 0, 4)
	p.root.render(&sb, &args)
	return sb.String(), args
}

// Predicate builds the expression tree for the filter. Text filters become
// ILIKE leaves joined by the combinator; role constraints are always ANDed
// against the text group. No supplied filters yields the universal
// predicate.
func (f Filter) Predicate() Predicate {
	textOp := "AND"
	if f.Combinator == Any {
		textOp = "OR"
	}

	var text []node
	if f.FullName != "" {
		text = append(text, containsNode{column: "full_name", needle: f.FullName})
	}
	if f.Email != "" {
		text = append(text, containsNode{column: "email", needle: f.Email})
	}

	var conj []node
	if len(text) > 0 {
		conj = append(conj, groupNode{op: textOp, children: text})
	}
	if f.Role != "" {
		conj = append(conj, eqNode{column: "role", value: string(f.Role)})
	}
	if len(f.Roles) > 0 {
		values := make([]string, len(f.Roles))
		for i, r := range f.Roles {
			values[i] = string(r)
		}
		conj = append(conj, inNode{column: "role", values: values})
	}

	if len(conj) == 0 {
		return Predicate{}
	}
	return Predicate{root: groupNode{op: "AND", children: conj}}
}

// escapeLike neutralizes LIKE metacharacters in user input so a filter value
// of "100%" matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
