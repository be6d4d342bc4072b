/*
Copyright 2026 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package funcdef

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"
)

// reservedParams are self-reference names that may not appear in a
// function signature being compiled into a catalog function.
var reservedParams = map[string]bool{
	"self": true,
	"cls":  true,
}

// Param declares one parameter of the callable being compiled, in
// signature order. Go reflection recovers parameter types but not names,
// so names are declared here.
type Param struct {
	Name string
	// Default is the parameter's default value; only consulted when
	// HasDefault is set. nil renders as NULL, strings are quoted, other
	// values use their literal text form.
	Default    any
	HasDefault bool
}

// Options configures Compile.
type Options struct {
	// Name overrides the function name. When empty the name is derived
	// from the function value via the runtime.
	Name    string
	Catalog string
	Schema  string
	// Comment is the function-level description.
	Comment string
	// Params names the function's parameters in declaration order; the
	// count must match the function's arity.
	Params []Param
	// Doc is a structured doc comment with Args:/Returns:/Raises:
	// sections; its Args entries become parameter comments.
	Doc string
	// Body is the executable body embedded verbatim in the definition.
	Body string
	// Source is a source snippet containing the function; when Body is
	// empty the body is extracted from it via ExtractBody.
	Source string
	// Language of the embedded body. Defaults to PYTHON.
	Language string
}

// Compile reflects over fn and renders a CREATE OR REPLACE FUNCTION
// statement for the catalog service. Every parameter must have a concrete
// type (variadic and untyped parameters are rejected), the function must
// declare a concrete non-error return type, and reserved self-reference
// parameter names are forbidden.
func Compile(fn any, opts Options) (string, error) {
	if fn == nil {
		return "", errors.New("fn must be a function, got nil")
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return "", fmt.Errorf("fn must be a function, got %T", fn)
	}
	if opts.Catalog == "" || opts.Schema == "" {
		return "", errors.New("catalog and schema are required")
	}

	name := opts.Name
	if name == "" {
		name = functionName(fn)
	}
	if name == "" {
		return "", errors.New("function name could not be determined, set Options.Name")
	}

	returnType, err := resolveReturnType(t, name)
	if err != nil {
		return "", err
	}

	if len(opts.Params) != t.NumIn() {
		return "", fmt.Errorf("function '%s' takes %d parameters but %d were declared", name, t.NumIn(), len(opts.Params))
	}

	comments := parseDoc(opts.Doc)

	clauses := make([]string, 0, t.NumIn())
	for i, param := range opts.Params {
		if reservedParams[param.Name] {
			return "", &ReservedParameterNameError{Param: param.Name}
		}
		if t.IsVariadic() && i == t.NumIn()-1 {
			return "", &MissingTypeHintError{Param: param.Name}
		}
		in := t.In(i)
		if isUntyped(in) {
			return "", &MissingTypeHintError{Param: param.Name}
		}
		paramType, err := catalogTypeFor(in)
		if err != nil {
			return "", fmt.Errorf("error in parameter '%s': %w", param.Name, err)
		}

		comment, ok := comments.Args[param.Name]
		if !ok {
			comment = fmt.Sprintf("Parameter %s", param.Name)
		}

		clause := fmt.Sprintf("%s %s", param.Name, paramType)
		if param.HasDefault {
			clause += " DEFAULT " + sqlLiteral(param.Default)
		}
		clause += fmt.Sprintf(" COMMENT '%s'", escapeSQLString(comment))
		clauses = append(clauses, clause)
	}

	body := opts.Body
	if body == "" && opts.Source != "" {
		extraction, err := ExtractBody(opts.Source)
		if err != nil {
			return "", err
		}
		body = extraction.Body
	}
	if body == "" {
		return "", fmt.Errorf("function body is required for '%s': set Body or Source", name)
	}
	body = strings.TrimRight(body, "\n")

	language := opts.Language
	if language == "" {
		language = "PYTHON"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s.%s.%s(%s)\n", opts.Catalog, opts.Schema, name, strings.Join(clauses, ", "))
	fmt.Fprintf(&b, "RETURNS %s\n", returnType)
	fmt.Fprintf(&b, "LANGUAGE %s\n", language)
	fmt.Fprintf(&b, "COMMENT '%s'\n", escapeSQLString(opts.Comment))
	b.WriteString("AS $$\n")
	b.WriteString(body)
	b.WriteString("\n$$;\n")
	return b.String(), nil
}

// resolveReturnType maps the function's return signature onto catalog type
// text. (T) and (T, error) shapes are accepted; a missing value type, a
// bare error, and the empty interface are all rejected.
func resolveReturnType(t reflect.Type, name string) (string, error) {
	switch t.NumOut() {
	case 0:
		return "", &MissingReturnTypeError{Function: name}
	case 1:
		if t.Out(0) == errorType {
			return "", &MissingReturnTypeError{Function: name, Type: "error"}
		}
	case 2:
		if t.Out(1) != errorType {
			return "", fmt.Errorf("function '%s' may return (T) or (T, error), got a second non-error result %s", name, t.Out(1))
		}
	default:
		return "", fmt.Errorf("function '%s' may return (T) or (T, error), got %d results", name, t.NumOut())
	}

	out := t.Out(0)
	if isUntyped(out) {
		return "", &MissingReturnTypeError{Function: name, Type: out.String()}
	}
	returnType, err := catalogTypeFor(out)
	if err != nil {
		return "", &MissingReturnTypeError{Function: name, Type: out.String()}
	}
	return returnType, nil
}

// functionName recovers the bare name of a function value from runtime
// metadata. Method values carry a -fm suffix that is stripped; anonymous
// functions yield an empty name and require Options.Name.
func functionName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	name = name[strings.LastIndex(name, ".")+1:]
	name = strings.TrimSuffix(name, "-fm")
	if isAnonymous(name) {
		return ""
	}
	return name
}

func isAnonymous(name string) bool {
	if !strings.HasPrefix(name, "func") {
		return false
	}
	rest := name[len("func"):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// sqlLiteral renders a default value using the SQL literal convention.
func sqlLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + escapeSQLString(v) + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
