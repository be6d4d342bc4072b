/*
Copyright 2026 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package funcdef

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// Extraction is the result of analyzing a function's source text.
type Extraction struct {
	// Body is the dedented statement text with the signature and any
	// leading comment block stripped.
	Body string
	// IndentUnit is the number of leading whitespace characters one
	// indentation level occupied in the original source; callers
	// embedding the body elsewhere re-indent with it.
	IndentUnit int
}

// ExtractBody parses a Go source snippet containing a function declaration
// and returns its body with the surrounding indentation removed.
//
// The extraction is syntax aware: lines that continue a multi-line raw
// string literal are never dedented and are excluded from the minimal
// indentation computation, so embedded text keeps its relative shape while
// the function-level indentation is stripped uniformly.
func ExtractBody(src string) (Extraction, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	parsed := src
	if err != nil {
		// Accept a bare function declaration without a package clause.
		parsed = "package src\n\n" + src
		file, err = parser.ParseFile(fset, "src.go", parsed, parser.ParseComments)
		if err != nil {
			return Extraction{}, fmt.Errorf("parsing function source: %w", err)
		}
	}

	var fn *ast.FuncDecl
	for _, decl := range file.Decls {
		if d, ok := decl.(*ast.FuncDecl); ok {
			fn = d
			break
		}
	}
	if fn == nil || fn.Body == nil {
		return Extraction{}, fmt.Errorf("no function declaration found in source")
	}
	if len(fn.Body.List) == 0 {
		return Extraction{}, nil
	}

	lines := strings.Split(parsed, "\n")
	startLine := fset.Position(fn.Body.List[0].Pos()).Line
	endLine := fset.Position(fn.Body.Rbrace).Line - 1
	if endLine < startLine {
		// Single-line body: take the text between the braces.
		line := lines[startLine-1]
		open := strings.Index(line, "{")
		closing := strings.LastIndex(line, "}")
		if open >= 0 && closing > open {
			return Extraction{Body: strings.TrimSpace(line[open+1 : closing])}, nil
		}
		return Extraction{Body: strings.TrimSpace(line)}, nil
	}

	protected := protectedLines(fset, fn.Body)

	minIndent := -1
	for i := startLine; i <= endLine; i++ {
		line := lines[i-1]
		if strings.TrimSpace(line) == "" || protected[i] {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	body := make([]string, 0, endLine-startLine+1)
	for i := startLine; i <= endLine; i++ {
		line := lines[i-1]
		switch {
		case protected[i]:
			body = append(body, line)
		case len(line) >= minIndent:
			body = append(body, line[minIndent:])
		default:
			body = append(body, line)
		}
	}

	return Extraction{Body: strings.Join(body, "\n"), IndentUnit: minIndent}, nil
}

// protectedLines marks the continuation lines of multi-line raw string
// literals; their absolute indentation is part of the literal's value.
func protectedLines(fset *token.FileSet, body *ast.BlockStmt) map[int]bool {
	protected := map[int]bool{}
	ast.Inspect(body, func(n ast.Node) bool {
		lit, ok := n.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING || !strings.HasPrefix(lit.Value, "`") {
			return true
		}
		first := fset.Position(lit.Pos()).Line
		last := fset.Position(lit.End()).Line
		for line := first + 1; line <= last; line++ {
			protected[line] = true
		}
		return true
	})
	return protected
}
