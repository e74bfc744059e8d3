package reference

import "strings"

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a number, or the name of a constant or
	// function.
	name string
	fn   *monadic

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // push parse(name)
	nodeConst // push constant name
	nodeCall  // evaluate left, apply fn

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeMod // evaluate left, mod by right
	nodePow // evaluate left, exp by right
)

var nodeNames = [...]string{"None", "Num", "Const", "Call", "Add", "Sub", "Mul", "Div", "Mod", "Pow"}

func (k nodeKind) String() string {
	if int(k) < len(nodeNames) {
		return nodeNames[k]
	}
	return "nodeKind(?)"
}

var opText = map[nodeKind]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeDiv: " / ",
	nodeMod: " % ",
	nodePow: " ^ ",
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with every term grouped, alternating round and square
// brackets by depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum, nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		n.left.fmt(b, !square)
		b.WriteString(opText[n.kind])
		n.right.fmt(b, !square)
	default:
		panic("reference: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
