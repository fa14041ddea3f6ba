/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder provides injection-resistant prompt construction,
similar in spirit to SQL prepared statements: template text comes from
string literals, runtime data enters only through standard encoders.

Templates use {{name}} placeholders. Binding a value returns a new Prompt
instance, so a package-level template can be bound per request without
synchronization:

	var scorePrompt = promptbuilder.MustNewPrompt(`
		Evaluate the statement below.
		{{statement}}
	`)

	p, err := scorePrompt.BindXML("statement", stmt)
	if err != nil {
		return err
	}
	text, err := p.Build()

Build returns an error while any placeholder remains unbound, and bound
values are never re-tokenized, so data containing {{...}} text cannot
introduce new substitutions.
*/
package promptbuilder
