package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToMap(p))
}

// FormatJSON writes the syntax tree as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToMap(p), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(p))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the syntax tree as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(p), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// ToMap converts a syntax tree to native Go maps and slices. Every node
// becomes a map with a "kind" key naming its [NodeKind] plus its position
// and fields.
func ToMap(node Node) map[string]any {
	pos := node.Pos()
	m := map[string]any{
		"kind":   node.Kind().String(),
		"line":   pos.Line,
		"column": pos.Column,
	}

	switch n := node.(type) {
	case *Program:
		m["body"] = stmtMaps(n.Body)

		if len(n.Diagnostics) > 0 {
			diags := make([]any, len(n.Diagnostics))
			for i, d := range n.Diagnostics {
				diags[i] = map[string]any{
					"message": d.Message,
					"line":    d.Pos.Line,
					"column":  d.Pos.Column,
				}
			}

			m["diagnostics"] = diags
		}

	case *VarDeclaration:
		m["identifier"] = n.Identifier
		m["constant"] = n.Constant
		m["value"] = exprMap(n.Value)

	case *FunctionDeclaration:
		m["name"] = n.Name
		m["parameters"] = n.Parameters
		m["body"] = stmtMaps(n.Body)

	case *ClassDeclaration:
		m["name"] = n.Name

		props := make([]any, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = ToMap(p)
		}

		methods := make([]any, len(n.Methods))
		for i, fn := range n.Methods {
			methods[i] = ToMap(fn)
		}

		m["properties"] = props
		m["methods"] = methods

	case *IfStatement:
		m["test"] = exprMap(n.Test)
		m["body"] = stmtMaps(n.Body)

		if n.Alternate != nil {
			m["alternate"] = stmtMaps(n.Alternate)
		}

	case *WhileStatement:
		m["test"] = exprMap(n.Test)
		m["body"] = stmtMaps(n.Body)

	case *UntilStatement:
		m["test"] = exprMap(n.Test)
		m["body"] = stmtMaps(n.Body)

	case *ForStatement:
		m["init"] = ToMap(n.Init)
		m["test"] = exprMap(n.Test)
		m["update"] = exprMap(n.Update)
		m["body"] = stmtMaps(n.Body)

	case *TryCatchStatement:
		m["body"] = stmtMaps(n.Body)
		m["alternate"] = stmtMaps(n.Alternate)

	case *ImportStatement:
		m["source"] = n.Source
		m["names"] = n.Names
		m["wildcard"] = n.Wildcard

	case *ReturnStatement:
		m["value"] = exprMap(n.Value)

	case *AssignmentExpr:
		m["target"] = exprMap(n.Target)
		m["value"] = exprMap(n.Value)

	case *BinaryExpr:
		m["operator"] = n.Operator
		m["left"] = exprMap(n.Left)
		m["right"] = exprMap(n.Right)

	case *MemberExpr:
		m["object"] = exprMap(n.Object)
		m["property"] = n.Property

	case *ArrayIndexExpr:
		m["object"] = exprMap(n.Object)
		m["index"] = exprMap(n.Index)

	case *CallExpr:
		m["callee"] = exprMap(n.Callee)
		m["args"] = exprMaps(n.Args)

	case *NewExpr:
		m["class"] = n.ClassName
		m["args"] = exprMaps(n.Args)

	case *Identifier:
		m["symbol"] = n.Symbol

	case *NumericLiteral:
		if math.IsInf(n.Value, 0) {
			// Overlong digit runs saturate, which JSON cannot encode.
			m["value"] = strconv.FormatFloat(n.Value, 'g', -1, 64)
		} else {
			m["value"] = n.Value
		}

	case *StringLiteral:
		m["value"] = n.Value

	case *ObjectLiteral:
		props := make([]any, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = map[string]any{
				"key":   p.Key,
				"value": exprMap(p.Value),
			}
		}

		m["properties"] = props

	case *ArrayLiteral:
		m["elements"] = exprMaps(n.Elements)
	}

	return m
}

func exprMap(e Expr) any {
	if e == nil {
		return nil
	}

	return ToMap(e)
}

func exprMaps(list []Expr) []any {
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = ToMap(e)
	}

	return out
}

func stmtMaps(list []Stmt) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = ToMap(s)
	}

	return out
}
