package parser

import (
	"fmt"
	"strings"
)

// Node is the interface implemented by all PHP AST nodes. The set of
// implementations is closed; consumers dispatch with a type switch.
type Node interface {
	node()
	Pos() Position
	DocComment() string
}

// base carries the source position and the raw doc comment (if any)
// attached to a node. Embedded by every node type.
type base struct {
	Position Position
	Doc      string
}

func (b *base) Pos() Position      { return b.Position }
func (b *base) DocComment() string { return b.Doc }

// Ident is a bare name: a class reference, a function name used as a value,
// or an unrecognized word the tolerant parser kept around.
type Ident struct {
	base
	Name string
}

// Variable is a $name expression.
type Variable struct {
	base
	Name string // without the leading $
}

// String is a single- or double-quoted string literal with escapes decoded.
type String struct {
	base
	Value string
}

// Number is an integer or float literal. The raw textual form is preserved.
type Number struct {
	base
	Value string
}

// ConstFetch is a constant reference: true, false, null, BAR, or a class
// constant such as TextType::class.
type ConstFetch struct {
	base
	Name string
}

// ArrayItem is one entry of an array literal. Key is nil for list-style
// entries without a =>.
type ArrayItem struct {
	Key   Node
	Value Node
}

// Array is an array literal in either [] or array() form.
type Array struct {
	base
	Items []*ArrayItem
}

// MethodCall is receiver->name(args).
type MethodCall struct {
	base
	Receiver Node
	Name     string
	Args     []Node
}

// PropFetch is receiver->name without a call.
type PropFetch struct {
	base
	Receiver Node
	Name     string
}

// FuncCall is name(args), including language constructs the tolerant parser
// reads as calls.
type FuncCall struct {
	base
	Name string
	Args []Node
}

// New is new Class(args).
type New struct {
	base
	Class string
	Args  []Node
}

// Assign is target = value.
type Assign struct {
	base
	Target Node
	Value  Node
}

// Return is a return statement; Value may be nil.
type Return struct {
	base
	Value Node
}

// Binary is a binary expression the extractor cannot read statically, kept
// so diagnostics can name both operands' location.
type Binary struct {
	base
	Op    string
	Left  Node
	Right Node
}

// Class is a class, trait, or interface declaration. Body holds the
// expression statements of all its methods in source order.
type Class struct {
	base
	Name string
	Body []Node
}

func (*Ident) node()      {}
func (*Variable) node()   {}
func (*String) node()     {}
func (*Number) node()     {}
func (*ConstFetch) node() {}
func (*Array) node()      {}
func (*MethodCall) node() {}
func (*PropFetch) node()  {}
func (*FuncCall) node()   {}
func (*New) node()        {}
func (*Assign) node()     {}
func (*Return) node()     {}
func (*Binary) node()     {}
func (*Class) node()      {}

// KindName returns a short human-readable name for the node's variant,
// used in diagnostics.
func KindName(n Node) string {
	switch n.(type) {
	case *Ident:
		return "Ident"
	case *Variable:
		return "Variable"
	case *String:
		return "String"
	case *Number:
		return "Number"
	case *ConstFetch:
		return "ConstFetch"
	case *Array:
		return "Array"
	case *MethodCall:
		return "MethodCall"
	case *PropFetch:
		return "PropFetch"
	case *FuncCall:
		return "FuncCall"
	case *New:
		return "New"
	case *Assign:
		return "Assign"
	case *Return:
		return "Return"
	case *Binary:
		return "Binary"
	case *Class:
		return "Class"
	case nil:
		return "nil"
	}
	return "Unknown"
}

// Sprint renders a node tree as an indented dump, one node per line.
func Sprint(n Node) string {
	var sb strings.Builder
	sprintIndent(&sb, n, 0)
	return sb.String()
}

func sprintIndent(sb *strings.Builder, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	if n == nil {
		sb.WriteString(prefix + "nil\n")
		return
	}
	switch v := n.(type) {
	case *Ident:
		fmt.Fprintf(sb, "%sIdent %s\n", prefix, v.Name)
	case *Variable:
		fmt.Fprintf(sb, "%sVariable $%s\n", prefix, v.Name)
	case *String:
		fmt.Fprintf(sb, "%sString %q\n", prefix, v.Value)
	case *Number:
		fmt.Fprintf(sb, "%sNumber %s\n", prefix, v.Value)
	case *ConstFetch:
		fmt.Fprintf(sb, "%sConstFetch %s\n", prefix, v.Name)
	case *Array:
		fmt.Fprintf(sb, "%sArray\n", prefix)
		for _, item := range v.Items {
			fmt.Fprintf(sb, "%s  Item\n", prefix)
			if item.Key != nil {
				sprintIndent(sb, item.Key, indent+2)
			}
			sprintIndent(sb, item.Value, indent+2)
		}
	case *MethodCall:
		fmt.Fprintf(sb, "%sMethodCall %s\n", prefix, v.Name)
		sprintIndent(sb, v.Receiver, indent+1)
		for _, arg := range v.Args {
			sprintIndent(sb, arg, indent+1)
		}
	case *PropFetch:
		fmt.Fprintf(sb, "%sPropFetch %s\n", prefix, v.Name)
		sprintIndent(sb, v.Receiver, indent+1)
	case *FuncCall:
		fmt.Fprintf(sb, "%sFuncCall %s\n", prefix, v.Name)
		for _, arg := range v.Args {
			sprintIndent(sb, arg, indent+1)
		}
	case *New:
		fmt.Fprintf(sb, "%sNew %s\n", prefix, v.Class)
		for _, arg := range v.Args {
			sprintIndent(sb, arg, indent+1)
		}
	case *Assign:
		fmt.Fprintf(sb, "%sAssign\n", prefix)
		sprintIndent(sb, v.Target, indent+1)
		sprintIndent(sb, v.Value, indent+1)
	case *Return:
		fmt.Fprintf(sb, "%sReturn\n", prefix)
		if v.Value != nil {
			sprintIndent(sb, v.Value, indent+1)
		}
	case *Binary:
		fmt.Fprintf(sb, "%sBinary %s\n", prefix, v.Op)
		sprintIndent(sb, v.Left, indent+1)
		sprintIndent(sb, v.Right, indent+1)
	case *Class:
		fmt.Fprintf(sb, "%sClass %s\n", prefix, v.Name)
		for _, stmt := range v.Body {
			sprintIndent(sb, stmt, indent+1)
		}
	}
}
