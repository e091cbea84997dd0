// dynform-lint checks form descriptor files for problems the engine would
// otherwise degrade around at runtime: unknown field types, duplicate names,
// missing subform definitions, invalid patterns, and unparsable visibility
// rules.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tonio993/dynamic-forms-app/components/timezones"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
	"github.com/Tonio993/dynamic-forms-app/pkg/validate"
	"github.com/Tonio993/dynamic-forms-app/pkg/visibility"
	"github.com/Tonio993/dynamic-forms-app/pkg/visibility/expr"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint form descriptor files for problems the engine would degrade around.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/contact.json"}
	}

	types := registry.NewDefault()
	if err := timezones.New().Register(types, nil); err != nil {
		fmt.Fprintf(os.Stderr, "register timezone plugin: %v\n", err)
		os.Exit(1)
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(types, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(types *registry.Registry, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	descriptor, err := forms.ParseDocument(raw, path)
	if err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}

	builder := control.NewBuilder(types)
	_, diagnostics := builder.Build(descriptor)

	var result []violation
	for _, diag := range diagnostics {
		message := diag.Reason
		if strings.TrimSpace(diag.Detail) != "" {
			message += ": " + diag.Detail
		}
		result = append(result, violation{
			file:     path,
			location: diag.Path,
			message:  message,
		})
	}

	result = append(result, lintFields(path, descriptor.Name, descriptor.Fields)...)
	return result, nil
}

func lintFields(file, location string, fields []forms.FieldDescriptor) []violation {
	var result []violation
	evaluator := expr.New()

	for _, field := range fields {
		fieldLocation := location + "." + field.Name

		if !validate.PatternValid(field) {
			result = append(result, violation{
				file:     file,
				location: fieldLocation,
				message:  "pattern does not compile",
			})
		}

		if rule, ok := field.ConfigString(forms.ConfigVisibleWhen); ok && strings.TrimSpace(rule) != "" {
			if _, err := evaluator.Eval(field.Name, rule, visibility.Context{}); err != nil {
				result = append(result, violation{
					file:     file,
					location: fieldLocation,
					message:  fmt.Sprintf("visibility rule does not parse: %v", err),
				})
			}
		}

		if sub, ok := field.SubForm(); ok {
			result = append(result, lintFields(file, fieldLocation, sub.Fields)...)
		}
	}
	return result
}
