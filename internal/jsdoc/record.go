// Package jsdoc models the doclets emitted by the JSDoc extractor and knows
// how to locate and run it.
package jsdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Record is one doclet as printed by `jsdoc -X`.
type Record struct {
	Name         string   `json:"name"`
	Longname     string   `json:"longname"`
	Kind         string   `json:"kind"`
	MemberOf     string   `json:"memberof,omitempty"`
	Description  string   `json:"description,omitempty"`
	ClassDesc    string   `json:"classdesc,omitempty"`
	Access       string   `json:"access,omitempty"`
	Virtual      bool     `json:"virtual,omitempty"`
	Scope        string   `json:"scope,omitempty"`
	Type         *Type    `json:"type,omitempty"`
	Params       []Param  `json:"params,omitempty"`
	Returns      Returns  `json:"returns,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	See          []string `json:"see,omitempty"`
	Augments     []string `json:"augments,omitempty"`
	Fires        []string `json:"fires,omitempty"`
	Ignore       bool     `json:"ignore,omitempty"`
	Undocumented bool     `json:"undocumented,omitempty"`
}

// Type lists the candidate type names of a doclet, parameter or return value.
type Type struct {
	Names []string `json:"names"`
}

// Return describes one documented return value.
type Return struct {
	Type        *Type  `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Returns accepts either a list of return values or a single object.
type Returns []Return

func (r *Returns) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if data[0] == '[' {
		var list []Return
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}
	var single Return
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*r = Returns{single}
	return nil
}

// Param is one documented parameter. Optional, Nullable and DefaultValue keep
// the raw JSON so callers can tell an absent field from a falsy one.
type Param struct {
	Name         string          `json:"name"`
	Type         *Type           `json:"type,omitempty"`
	Description  string          `json:"description,omitempty"`
	DefaultValue json.RawMessage `json:"defaultvalue,omitempty"`
	Optional     json.RawMessage `json:"optional,omitempty"`
	Nullable     json.RawMessage `json:"nullable,omitempty"`
}

// HasDefault reports whether the doclet carried a defaultvalue field at all.
func (p Param) HasDefault() bool {
	return len(p.DefaultValue) > 0
}

// Default decodes the raw default value. It returns nil when absent.
func (p Param) Default() any {
	if !p.HasDefault() {
		return nil
	}
	var v any
	if err := json.Unmarshal(p.DefaultValue, &v); err != nil {
		return string(p.DefaultValue)
	}
	return v
}

// Decode reads a JSON array of doclets.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode doclets: %w", err)
	}
	return records, nil
}

// Documented drops doclets the extractor marked as undocumented.
func Documented(records []Record) []Record {
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Undocumented {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// SortByName orders records by name, keeping the extractor order for ties.
func SortByName(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
}
