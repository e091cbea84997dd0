package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Tonio993/dynamic-forms-app/components/timezones"
	"github.com/Tonio993/dynamic-forms-app/pkg/adapters"
	"github.com/Tonio993/dynamic-forms-app/pkg/adapters/html"
	"github.com/Tonio993/dynamic-forms-app/pkg/adapters/jsonform"
	"github.com/Tonio993/dynamic-forms-app/pkg/adapters/tui"
	"github.com/Tonio993/dynamic-forms-app/pkg/control"
	"github.com/Tonio993/dynamic-forms-app/pkg/forms"
	"github.com/Tonio993/dynamic-forms-app/pkg/jsonschema"
	"github.com/Tonio993/dynamic-forms-app/pkg/messages"
	"github.com/Tonio993/dynamic-forms-app/pkg/openapi"
	"github.com/Tonio993/dynamic-forms-app/pkg/registry"
)

func main() {
	source := flag.String("source", "", "form descriptor, OpenAPI document, or JSON Schema (path or URL)")
	format := flag.String("format", "descriptor", "source format: descriptor, openapi, jsonschema")
	operation := flag.String("operation", "", "operation ID to import (openapi format)")
	adapterName := flag.String("adapter", "", "adapter to use: html, json, tui (default: tui on a terminal, json otherwise)")
	valuesPath := flag.String("values", "", "JSON file with initial form values")
	output := flag.String("output", "", "output file (stdout if empty)")
	action := flag.String("action", "", "form action URL (html adapter)")
	method := flag.String("method", "post", "form method (html adapter)")
	title := flag.String("title", "", "form title override")
	flag.Parse()

	if strings.TrimSpace(*source) == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	descriptor, err := loadDescriptor(ctx, *source, *format, *operation)
	if err != nil {
		log.Fatalf("load form: %v", err)
	}

	types := registry.NewDefault()
	msgs := messages.NewDefault()
	if err := timezones.New().Register(types, msgs); err != nil {
		log.Fatalf("register timezone plugin: %v", err)
	}

	session := control.NewSession(descriptor,
		control.WithRegistry(types),
		control.WithMessages(msgs),
	)
	for _, diag := range session.Diagnostics() {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", diag.Path, diag.Reason)
	}

	if *valuesPath != "" {
		values, err := readValues(*valuesPath)
		if err != nil {
			log.Fatalf("read values: %v", err)
		}
		session.SetExternalValues(values)
	}

	adapter, err := pickAdapter(*adapterName)
	if err != nil {
		log.Fatal(err)
	}

	payload, err := adapter.Render(ctx, session, adapters.Options{
		Action: *action,
		Method: *method,
		Title:  *title,
	})
	if err != nil {
		log.Fatalf("render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(payload))
}

func loadDescriptor(ctx context.Context, source, format, operation string) (forms.FormDescriptor, error) {
	switch format {
	case "descriptor":
		data, err := os.ReadFile(source)
		if err != nil {
			return forms.FormDescriptor{}, err
		}
		return forms.ParseDocument(data, source)
	case "openapi":
		if strings.TrimSpace(operation) == "" {
			return forms.FormDescriptor{}, fmt.Errorf("openapi format needs -operation")
		}
		doc, err := openapi.Load(ctx, source)
		if err != nil {
			return forms.FormDescriptor{}, err
		}
		descriptor, warnings, err := openapi.Import(ctx, doc, operation)
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
		return descriptor, err
	case "jsonschema":
		data, err := os.ReadFile(source)
		if err != nil {
			return forms.FormDescriptor{}, err
		}
		schema, err := jsonschema.Parse(data, source)
		if err != nil {
			return forms.FormDescriptor{}, err
		}
		descriptor, warnings, err := jsonschema.Import(schema, nameFromPath(source))
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
		return descriptor, err
	default:
		return forms.FormDescriptor{}, fmt.Errorf("unknown format %q", format)
	}
}

func pickAdapter(name string) (adapters.Adapter, error) {
	reg := adapters.NewRegistry()
	htmlAdapter, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("configure html adapter: %w", err)
	}
	tuiAdapter, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("configure tui adapter: %w", err)
	}
	for _, adapter := range []adapters.Adapter{htmlAdapter, tuiAdapter, jsonform.New()} {
		if err := reg.Register(adapter); err != nil {
			return nil, err
		}
	}

	if name == "" {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			name = "tui"
		} else {
			name = "json"
		}
	}
	adapter, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown adapter %q (have: %s)", name, strings.Join(reg.List(), ", "))
	}
	return adapter, nil
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}

func nameFromPath(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
