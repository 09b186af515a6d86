package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node.
// Source positions and node ids are omitted, so the output depends only
// on the tree's shape and values.
func Print(node Node) string {
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Module:
		decls := make([]interface{}, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = simplify(d)
		}
		return map[string]interface{}{"type": "Module", "decls": decls}

	case *Declaration:
		return map[string]interface{}{
			"type":        "Declaration",
			"name":        n.Name,
			"params":      n.Params,
			"polymorphic": n.Polymorphic,
			"body":        simplify(n.Body),
		}

	case *IdExpression:
		return map[string]interface{}{"type": "IdExpression", "name": n.Name}

	case *IntegralLiteral:
		return map[string]interface{}{"type": "IntegralLiteral", "value": n.Value}

	case *StringLiteral:
		return map[string]interface{}{"type": "StringLiteral", "value": n.Value}

	case *BooleanLiteral:
		return map[string]interface{}{"type": "BooleanLiteral", "value": n.Value}

	case *Invocation:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplify(a)
		}
		return map[string]interface{}{"type": "Invocation", "callee": n.Callee, "args": args}

	case *Guard:
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = map[string]interface{}{
				"condition": simplify(c.Condition),
				"value":     simplify(c.Value),
			}
		}
		return map[string]interface{}{
			"type":     "Guard",
			"cases":    cases,
			"wildcard": simplify(n.Wildcard),
		}

	case *Bind:
		return map[string]interface{}{
			"type":       "Bind",
			"identifier": n.Identifier,
			"value":      simplify(n.Value),
			"body":       simplify(n.Body),
		}

	case *Tuple:
		items := make([]interface{}, len(n.Items))
		for i, it := range n.Items {
			items[i] = map[string]interface{}{"tag": it.Tag, "value": simplify(it.Value)}
		}
		return map[string]interface{}{"type": "Tuple", "items": items}

	default:
		return fmt.Sprintf("<unknown node %T>", node)
	}
}
