package main

import (
	"encoding/json"
	"fmt"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
)

// This file decodes the JSON interchange format for a Core AST program
// (SPEC_FULL.md §2.3: "the documented interchange format for a desugarer
// that hasn't been built yet"). Every node is a JSON object tagged with a
// "kind" discriminator; decodeExpr/decodePattern/decodeTypeExpr/decodeDecl
// dispatch on it the same way internal/infer's own Infer dispatches on an
// ast.Expr's Go type.

type jsonLoc struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func (l jsonLoc) toAST() ast.Location {
	return ast.Location{File: l.File, Line: l.Line, Column: l.Column, Offset: l.Offset}
}

type jsonNode struct {
	Kind string  `json:"kind"`
	Loc  jsonLoc `json:"loc"`
}

func decodeProgram(data []byte) (*ast.Program, error) {
	var raw struct {
		Decls []json.RawMessage `json:"decls"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	decls := make([]ast.Decl, 0, len(raw.Decls))
	for i, d := range raw.Decls {
		decl, err := decodeDecl(d)
		if err != nil {
			return nil, fmt.Errorf("decl[%d]: %w", i, err)
		}
		decls = append(decls, decl)
	}
	return &ast.Program{Decls: decls}, nil
}

func decodeDecl(raw json.RawMessage) (ast.Decl, error) {
	var head jsonNode
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	node := ast.Node{Loc: head.Loc.toAST()}

	switch head.Kind {
	case "Let":
		var d struct {
			Name      string          `json:"name"`
			Value     json.RawMessage `json:"value"`
			Recursive bool            `json:"recursive"`
			Exported  bool            `json:"exported"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.LetDecl{Node: node, Name: d.Name, Value: value, Recursive: d.Recursive, Exported: d.Exported}, nil

	case "LetRecGroup":
		var d struct {
			Bindings []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"bindings"`
			Exported map[string]bool `json:"exported"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		bindings := make([]ast.RecBinding, 0, len(d.Bindings))
		for _, b := range d.Bindings {
			value, err := decodeExpr(b.Value)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, ast.RecBinding{Name: b.Name, Value: value})
		}
		return &ast.LetRecGroupDecl{Node: node, Bindings: bindings, Exported: d.Exported}, nil

	case "External":
		var d struct {
			Name   string          `json:"name"`
			Type   json.RawMessage `json:"type"`
			JSName string          `json:"jsName"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		ty, err := decodeTypeExpr(d.Type)
		if err != nil {
			return nil, err
		}
		return &ast.ExternalDecl{Node: node, Name: d.Name, Type: ty, JSName: d.JSName}, nil

	case "ExternalOverload":
		var d struct {
			Name    string `json:"name"`
			Entries []struct {
				Arity  int             `json:"arity"`
				Type   json.RawMessage `json:"type"`
				JSName string          `json:"jsName"`
			} `json:"entries"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		entries := make([]ast.ExternalOverloadEntry, 0, len(d.Entries))
		for _, e := range d.Entries {
			ty, err := decodeTypeExpr(e.Type)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.ExternalOverloadEntry{Arity: e.Arity, Type: ty, JSName: e.JSName})
		}
		return &ast.ExternalOverloadDecl{Node: node, Name: d.Name, Entries: entries}, nil

	case "ExternalType":
		var d struct {
			Name  string          `json:"name"`
			Alias json.RawMessage `json:"alias"`
			Arity int             `json:"arity"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		var alias ast.TypeExpr
		if len(d.Alias) > 0 {
			var err error
			alias, err = decodeTypeExpr(d.Alias)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ExternalTypeDecl{Node: node, Name: d.Name, Alias: alias, Arity: d.Arity}, nil

	case "TypeDef":
		var d struct {
			Name     string `json:"name"`
			Params   []string `json:"params"`
			Variants []struct {
				Name string            `json:"name"`
				Args []json.RawMessage `json:"args"`
			} `json:"variants"`
			RecordBody json.RawMessage `json:"recordBody"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		td := &ast.TypeDef{Node: node, Name: d.Name, Params: d.Params}
		for _, v := range d.Variants {
			args := make([]ast.TypeExpr, 0, len(v.Args))
			for _, a := range v.Args {
				at, err := decodeTypeExpr(a)
				if err != nil {
					return nil, err
				}
				args = append(args, at)
			}
			td.Variants = append(td.Variants, ast.VariantCase{Name: v.Name, Args: args})
		}
		if len(d.RecordBody) > 0 {
			rt, err := decodeTypeExpr(d.RecordBody)
			if err != nil {
				return nil, err
			}
			rec, ok := rt.(*ast.RecordTypeExpr)
			if !ok {
				return nil, fmt.Errorf("type %s: recordBody must be a record type", d.Name)
			}
			td.RecordBody = rec
		}
		return td, nil

	default:
		return nil, fmt.Errorf("unknown decl kind %q", head.Kind)
	}
}

func decodeExpr(raw json.RawMessage) (ast.Expr, error) {
	var head jsonNode
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	node := ast.Node{Loc: head.Loc.toAST()}

	switch head.Kind {
	case "Literal":
		var d struct {
			LitKind string      `json:"litKind"`
			Value   interface{} `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		k, err := decodeLitKind(d.LitKind)
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Node: node, Kind: k, Value: d.Value}, nil

	case "Var":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.Var{Node: node, Name: d.Name}, nil

	case "Lambda":
		var d struct {
			Param json.RawMessage `json:"param"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		param, err := decodePattern(d.Param)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Node: node, Param: param, Body: body}, nil

	case "App":
		var d struct {
			Func json.RawMessage `json:"func"`
			Arg  json.RawMessage `json:"arg"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fn, err := decodeExpr(d.Func)
		if err != nil {
			return nil, err
		}
		arg, err := decodeExpr(d.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.App{Node: node, Func: fn, Arg: arg}, nil

	case "BinOp":
		var d struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		left, err := decodeExpr(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(d.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Node: node, Op: ast.BinOpKind(d.Op), Left: left, Right: right}, nil

	case "UnOp":
		var d struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(d.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Node: node, Op: ast.UnOpKind(d.Op), Operand: operand}, nil

	case "Let":
		var d struct {
			Pattern   json.RawMessage `json:"pattern"`
			Value     json.RawMessage `json:"value"`
			Body      json.RawMessage `json:"body"`
			Recursive bool            `json:"recursive"`
			Mutable   bool            `json:"mutable"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		pattern, err := decodePattern(d.Pattern)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		bodyExpr, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Let{Node: node, Pattern: pattern, Value: value, Body: bodyExpr, Recursive: d.Recursive, Mutable: d.Mutable}, nil

	case "LetRecGroup":
		var d struct {
			Bindings []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"bindings"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		bindings := make([]ast.RecBinding, 0, len(d.Bindings))
		for _, b := range d.Bindings {
			value, err := decodeExpr(b.Value)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, ast.RecBinding{Name: b.Name, Value: value})
		}
		bodyExpr, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LetRecGroup{Node: node, Bindings: bindings, Body: bodyExpr}, nil

	case "Match":
		var d struct {
			Scrutinee json.RawMessage `json:"scrutinee"`
			Arms      []struct {
				Pattern json.RawMessage `json:"pattern"`
				Guard   json.RawMessage `json:"guard"`
				Body    json.RawMessage `json:"body"`
			} `json:"arms"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		scrutinee, err := decodeExpr(d.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]ast.MatchArm, 0, len(d.Arms))
		for _, a := range d.Arms {
			pattern, err := decodePattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			var guard ast.Expr
			if len(a.Guard) > 0 {
				guard, err = decodeExpr(a.Guard)
				if err != nil {
					return nil, err
				}
			}
			armBody, err := decodeExpr(a.Body)
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.MatchArm{Pattern: pattern, Guard: guard, Body: armBody})
		}
		return &ast.Match{Node: node, Scrutinee: scrutinee, Arms: arms}, nil

	case "Record":
		var d struct {
			Fields []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fields := make([]ast.RecordField, 0, len(d.Fields))
		for _, f := range d.Fields {
			value, err := decodeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.RecordField{Name: f.Name, Value: value})
		}
		return &ast.Record{Node: node, Fields: fields}, nil

	case "RecordAccess":
		var d struct {
			Record json.RawMessage `json:"record"`
			Field  string          `json:"field"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		record, err := decodeExpr(d.Record)
		if err != nil {
			return nil, err
		}
		return &ast.RecordAccess{Node: node, Record: record, Field: d.Field}, nil

	case "RecordUpdate":
		var d struct {
			Base    json.RawMessage `json:"base"`
			Updates []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"updates"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		base, err := decodeExpr(d.Base)
		if err != nil {
			return nil, err
		}
		updates := make([]ast.RecordUpdateField, 0, len(d.Updates))
		for _, u := range d.Updates {
			value, err := decodeExpr(u.Value)
			if err != nil {
				return nil, err
			}
			updates = append(updates, ast.RecordUpdateField{Name: u.Name, Value: value})
		}
		return &ast.RecordUpdate{Node: node, Base: base, Updates: updates}, nil

	case "Variant":
		var d struct {
			Ctor string            `json:"ctor"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		args := make([]ast.Expr, 0, len(d.Args))
		for _, a := range d.Args {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &ast.Variant{Node: node, Ctor: d.Ctor, Args: args}, nil

	case "Tuple":
		var d struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		elems := make([]ast.Expr, 0, len(d.Elements))
		for _, e := range d.Elements {
			elem, err := decodeExpr(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return &ast.Tuple{Node: node, Elements: elems}, nil

	case "Unsafe":
		var d struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(d.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.Unsafe{Node: node, Inner: inner}, nil

	case "TypeAnnotation":
		var d struct {
			Inner json.RawMessage `json:"inner"`
			Type  json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(d.Inner)
		if err != nil {
			return nil, err
		}
		ty, err := decodeTypeExpr(d.Type)
		if err != nil {
			return nil, err
		}
		return &ast.TypeAnnotation{Node: node, Inner: inner, Type: ty}, nil

	default:
		return nil, fmt.Errorf("unknown expr kind %q", head.Kind)
	}
}

func decodePattern(raw json.RawMessage) (ast.Pattern, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "Wildcard":
		return &ast.WildcardPattern{}, nil

	case "Var":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.VarPattern{Name: d.Name}, nil

	case "Literal":
		var d struct {
			LitKind string      `json:"litKind"`
			Value   interface{} `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		k, err := decodeLitKind(d.LitKind)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralPattern{Kind: k, Value: d.Value}, nil

	case "Variant":
		var d struct {
			Ctor string            `json:"ctor"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		args := make([]ast.Pattern, 0, len(d.Args))
		for _, a := range d.Args {
			p, err := decodePattern(a)
			if err != nil {
				return nil, err
			}
			args = append(args, p)
		}
		return &ast.VariantPattern{Ctor: d.Ctor, Args: args}, nil

	case "Record":
		var d struct {
			Fields []struct {
				Name    string          `json:"name"`
				Pattern json.RawMessage `json:"pattern"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fields := make([]ast.RecordFieldPattern, 0, len(d.Fields))
		for _, f := range d.Fields {
			p, err := decodePattern(f.Pattern)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.RecordFieldPattern{Name: f.Name, Pattern: p})
		}
		return &ast.RecordPattern{Fields: fields}, nil

	case "Tuple":
		var d struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		elems := make([]ast.Pattern, 0, len(d.Elements))
		for _, e := range d.Elements {
			p, err := decodePattern(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, p)
		}
		return &ast.TuplePattern{Elements: elems}, nil

	default:
		return nil, fmt.Errorf("unknown pattern kind %q", head.Kind)
	}
}

func decodeTypeExpr(raw json.RawMessage) (ast.TypeExpr, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "Named":
		var d struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		args := make([]ast.TypeExpr, 0, len(d.Args))
		for _, a := range d.Args {
			at, err := decodeTypeExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, at)
		}
		return &ast.NamedTypeExpr{Name: d.Name, Args: args}, nil

	case "Func":
		var d struct {
			Param  json.RawMessage `json:"param"`
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		param, err := decodeTypeExpr(d.Param)
		if err != nil {
			return nil, err
		}
		result, err := decodeTypeExpr(d.Result)
		if err != nil {
			return nil, err
		}
		return &ast.FuncTypeExpr{Param: param, Result: result}, nil

	case "Record":
		var d struct {
			Fields []struct {
				Name string          `json:"name"`
				Type json.RawMessage `json:"type"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fields := make([]ast.RecordFieldTypeExpr, 0, len(d.Fields))
		for _, f := range d.Fields {
			ft, err := decodeTypeExpr(f.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.RecordFieldTypeExpr{Name: f.Name, Type: ft})
		}
		return &ast.RecordTypeExpr{Fields: fields}, nil

	case "Union":
		var d struct {
			Alternatives []json.RawMessage `json:"alternatives"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		alts := make([]ast.TypeExpr, 0, len(d.Alternatives))
		for _, a := range d.Alternatives {
			at, err := decodeTypeExpr(a)
			if err != nil {
				return nil, err
			}
			alts = append(alts, at)
		}
		return &ast.UnionTypeExpr{Alternatives: alts}, nil

	case "Ref":
		var d struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeTypeExpr(d.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.RefTypeExpr{Inner: inner}, nil

	case "TypeVar":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.TypeVarExpr{Name: d.Name}, nil

	default:
		return nil, fmt.Errorf("unknown type expr kind %q", head.Kind)
	}
}

func decodeLitKind(s string) (ast.LitKind, error) {
	switch s {
	case "Int":
		return ast.IntLit, nil
	case "Float":
		return ast.FloatLit, nil
	case "String":
		return ast.StringLit, nil
	case "Bool":
		return ast.BoolLit, nil
	case "Unit":
		return ast.UnitLit, nil
	default:
		return 0, fmt.Errorf("unknown literal kind %q", s)
	}
}
