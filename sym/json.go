package sym

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// jsonNode is the wire form of an expression tree.
type jsonNode struct {
	Kind string     `json:"k"`
	Val  string     `json:"v,omitempty"`
	Args []jsonNode `json:"args,omitempty"`
}

func toNode(e Expr) jsonNode {
	switch v := e.(type) {
	case *Num:
		return jsonNode{Kind: "num", Val: v.val.RatString()}
	case *Sym:
		return jsonNode{Kind: "sym", Val: v.name}
	case *Imag:
		return jsonNode{Kind: "imag"}
	case *Add:
		args := make([]jsonNode, len(v.terms))
		for i, t := range v.terms {
			args[i] = toNode(t)
		}
		return jsonNode{Kind: "add", Args: args}
	case *Mul:
		args := make([]jsonNode, len(v.factors))
		for i, f := range v.factors {
			args[i] = toNode(f)
		}
		return jsonNode{Kind: "mul", Args: args}
	case *Pow:
		return jsonNode{Kind: "pow", Args: []jsonNode{toNode(v.base), toNode(v.exp)}}
	case *Func:
		args := make([]jsonNode, len(v.args))
		for i, a := range v.args {
			args[i] = toNode(a)
		}
		return jsonNode{Kind: "func", Val: v.name, Args: args}
	}
	panic("sym: unknown expression kind")
}

func fromNode(n jsonNode) (Expr, error) {
	switch n.Kind {
	case "num":
		r, ok := new(big.Rat).SetString(n.Val)
		if !ok {
			return nil, fmt.Errorf("sym: bad number %q", n.Val)
		}
		return &Num{val: r}, nil
	case "sym":
		if n.Val == "" {
			return nil, fmt.Errorf("sym: empty symbol name")
		}
		return S(n.Val), nil
	case "imag":
		return J(), nil
	case "add", "mul":
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			e, err := fromNode(a)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		if n.Kind == "add" {
			return AddOf(args...), nil
		}
		return MulOf(args...), nil
	case "pow":
		if len(n.Args) != 2 {
			return nil, fmt.Errorf("sym: pow needs 2 args, got %d", len(n.Args))
		}
		base, err := fromNode(n.Args[0])
		if err != nil {
			return nil, err
		}
		exp, err := fromNode(n.Args[1])
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	case "func":
		if n.Val == "" || len(n.Args) == 0 {
			return nil, fmt.Errorf("sym: malformed function node")
		}
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			e, err := fromNode(a)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return funcOf(n.Val, args...).Simplify(), nil
	}
	return nil, fmt.Errorf("sym: unknown node kind %q", n.Kind)
}

// MarshalExpr encodes e as JSON.
func MarshalExpr(e Expr) ([]byte, error) {
	return json.Marshal(toNode(e))
}

// UnmarshalExpr decodes an expression from JSON produced by MarshalExpr.
func UnmarshalExpr(data []byte) (Expr, error) {
	var n jsonNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return fromNode(n)
}
