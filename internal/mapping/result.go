// SPDX-License-Identifier: Apache-2.0

// Package mapping resolves a free-form test step into one automation
// action through a cascade of remote lookups that ends in a fixed local
// rule table.
package mapping

// Action types.
const (
	TypeClick          = "click"
	TypeInput          = "input"
	TypeVerification   = "verification"
	TypeNavigation     = "navigation"
	TypeEncryptedInput = "encrypted_input"
	TypeVisibility     = "visibility"
	TypeGetText        = "get_text"
	TypeDragDrop       = "drag_drop"
	TypeUpload         = "upload"
	TypeDownload       = "download"
	TypeUnknown        = "unknown"
)

// Source names the cascade tier that produced a Result.
type Source string

const (
	SourceRemoteFull        Source = "remote_full"
	SourceRemoteCombination Source = "remote_combination"
	SourceRemoteTriple      Source = "remote_triple"
	SourceRemoteIndividual  Source = "remote_individual"
	SourceRemoteAlternative Source = "remote_alternative_table"
	SourceRemoteSynonym     Source = "remote_synonym"
	SourceLocal             Source = "local"
)

// Result is the action chosen for one fragment.
type Result struct {
	Found      bool   `json:"found"`
	Action     string `json:"action"`
	Type       string `json:"type"`
	GroovyCode string `json:"groovy_code,omitempty"`
	Source     Source `json:"source,omitempty"`
	// Key is the lookup key that matched, when the source is remote.
	Key string `json:"key,omitempty"`
	// Collection is the store collection the record came from.
	Collection string `json:"collection,omitempty"`
	Priority   int    `json:"priority,omitempty"`
}

func (r Result) withDefaultType(def string) Result {
	if r.Type == "" {
		r.Type = def
	}
	return r
}
