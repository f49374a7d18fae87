// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// recordSchema constrains dictionary records before they reach a store.
const recordSchema = `
#Type: "click" | "input" | "verification" | "navigation" | "encrypted_input" |
	"visibility" | "get_text" | "drag_drop" | "upload" | "download" | "unknown"

#Record: {
	keywords?:    [...string & !=""]
	keyword?:     string
	action:       string & !=""
	type?:        #Type
	groovy_code?: string
	meaning?:     string
}
`

// Validator checks records against the #Record CUE definition. A Validator
// owns its CUE context and is not safe for concurrent use.
type Validator struct {
	ctx    *cue.Context
	record cue.Value
}

// NewValidator compiles the record schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(recordSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Record"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Record: %w", err)
	}
	return &Validator{ctx: ctx, record: def}, nil
}

// Validate reports whether rec satisfies #Record and names at least one
// keyword.
func (v *Validator) Validate(rec Record) error {
	value := v.ctx.Encode(rec)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := v.record.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	if len(rec.Keywords) == 0 && rec.Keyword == "" {
		return fmt.Errorf("record %q has neither keywords nor keyword", rec.Action)
	}
	return nil
}
