/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"strings"
	"testing"
)

func TestNewPromptCollectsBindings(t *testing.T) {
	p, err := NewPrompt(`Evaluate {{objective}} with run {{run_number}}.`)
	if err != nil {
		t.Fatalf("NewPrompt() error = %v", err)
	}

	got := p.GetBindings()
	for _, want := range []string{"objective", "run_number"} {
		if _, ok := got[want]; !ok {
			t.Errorf("GetBindings() missing %q", want)
		}
	}
	if len(got) != 2 {
		t.Errorf("GetBindings() = %d bindings, want 2", len(got))
	}
}

func TestNewPromptRejectsMalformedTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template stringLiteral
	}{{
		name:     "unclosed_binding",
		template: `hello {{name`,
	}, {
		name:     "empty_identifier",
		template: `hello {{}}`,
	}, {
		name:     "hyphenated_identifier",
		template: `hello {{run-number}}`,
	}, {
		name:     "leading_digit",
		template: `hello {{1st}}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPrompt(tt.template); err == nil {
				t.Errorf("NewPrompt(%q) expected error", tt.template)
			}
		})
	}
}

func TestBuildFailsWithUnboundPlaceholder(t *testing.T) {
	p := MustNewPrompt(`{{a}} and {{b}}`)

	p, err := p.BindStringLiteral("a", "first")
	if err != nil {
		t.Fatalf("BindStringLiteral() error = %v", err)
	}

	if _, err := p.Build(); err == nil {
		t.Error("Build() expected error with unbound placeholder")
	}
}

func TestBindingIsImmutable(t *testing.T) {
	base := MustNewPrompt(`value: {{v}}`)

	bound, err := base.BindStringLiteral("v", "one")
	if err != nil {
		t.Fatalf("BindStringLiteral() error = %v", err)
	}

	// The original still has its placeholder unbound.
	if _, err := base.Build(); err == nil {
		t.Error("base.Build() should fail, binding must not mutate the original")
	}

	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got != "value: one" {
		t.Errorf("Build() = %q, want %q", got, "value: one")
	}

	// Rebinding an already-bound placeholder is an error.
	if _, err := bound.BindStringLiteral("v", "two"); err == nil {
		t.Error("rebinding should fail")
	}
}

func TestBindXMLEscapesContent(t *testing.T) {
	p := MustNewPrompt(`{{objective}}`)

	p, err := p.BindXML("objective", struct {
		XMLName struct{} `xml:"objective"`
		Content string   `xml:",chardata"`
	}{
		Content: "Students will compare FCFS <vs> SJF",
	})
	if err != nil {
		t.Fatalf("BindXML() error = %v", err)
	}

	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(got, "&lt;vs&gt;") {
		t.Errorf("Build() = %q, want XML-escaped content", got)
	}
}

func TestBoundValuesAreNotReTokenized(t *testing.T) {
	p := MustNewPrompt(`{{first}} {{second}}`)

	p, err := p.BindJSON("first", map[string]string{"text": "{{second}}"})
	if err != nil {
		t.Fatalf("BindJSON() error = %v", err)
	}
	p, err = p.BindStringLiteral("second", "done")
	if err != nil {
		t.Fatalf("BindStringLiteral() error = %v", err)
	}

	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(got, `"{{second}}"`) {
		t.Errorf("Build() = %q, bound JSON should keep {{second}} inert", got)
	}
}

func TestBindYAML(t *testing.T) {
	p := MustNewPrompt(`context:
{{course}}`)

	p, err := p.BindYAML("course", map[string]string{"title": "Advanced Operating Systems"})
	if err != nil {
		t.Fatalf("BindYAML() error = %v", err)
	}

	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(got, "title: Advanced Operating Systems") {
		t.Errorf("Build() = %q, want YAML-rendered course context", got)
	}
}
