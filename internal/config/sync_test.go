// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/invowk/texshuffle/pkg/cueutil"
)

// The tests in this file keep fileConfig and the embedded #Config schema
// describing the same document.

// schemaFields returns the regular fields of #Config, each mapped to
// whether it is optional.
func schemaFields(t *testing.T) map[string]bool {
	t.Helper()

	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile schema: %v", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		t.Fatalf("#Config not found: %v", def.Err())
	}

	iter, err := def.Fields(cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to list #Config fields: %v", err)
	}
	fields := make(map[string]bool)
	for iter.Next() {
		sel := iter.Selector()
		if sel.IsDefinition() || sel.LabelType().IsHidden() {
			continue
		}
		fields[strings.TrimSuffix(sel.String(), "?")] = iter.IsOptional()
	}
	return fields
}

// structTags returns the value of tag for every exported field of T that
// sets it, keyed by Go field name.
func structTags[T any](tag string) map[string]string {
	typ := reflect.TypeFor[T]()
	tags := make(map[string]string)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			tags[field.Name] = name
		}
	}
	return tags
}

func TestFileConfigSchemaSync(t *testing.T) {
	t.Parallel()

	cueFields := schemaFields(t)
	jsonTags := structTags[fileConfig]("json")

	goNames := make([]string, 0, len(jsonTags))
	for _, name := range jsonTags {
		goNames = append(goNames, name)
		if _, ok := cueFields[name]; !ok {
			t.Errorf("fileConfig key %q is missing from #Config", name)
		}
	}
	for name, optional := range cueFields {
		if !slices.Contains(goNames, name) {
			t.Errorf("#Config field %q has no fileConfig counterpart", name)
		}
		if !optional {
			t.Errorf("#Config field %q should be optional: every key has a default", name)
		}
	}
}

// Viper decodes through mapstructure, so its tags must name the same keys.
func TestFileConfigMapstructureTags(t *testing.T) {
	t.Parallel()

	jsonTags := structTags[fileConfig]("json")
	msTags := structTags[fileConfig]("mapstructure")
	for field, name := range jsonTags {
		if msTags[field] != name {
			t.Errorf("field %s: mapstructure tag %q != json tag %q", field, msTags[field], name)
		}
	}
}

// validateCUE checks a CUE or JSON snippet against #Config the same way
// Load does.
func validateCUE(t *testing.T, data string) error {
	t.Helper()
	_, err := cueutil.DecodeMap(configSchema, []byte(data), "#Config", cueutil.WithConcrete(true))
	return err
}

func TestPathEntryConstraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cueData string
		wantErr bool
	}{
		{
			name:    "string entry accepted",
			cueData: `excludedDirs: ["gui", "entity/chest"]`,
			wantErr: false,
		},
		{
			name:    "segment list accepted",
			cueData: `excludedDirs: [["entity", "chest"]]`,
			wantErr: false,
		},
		{
			name:    "mixed forms in a group accepted",
			cueData: `compatibilityGroups: [["item", ["block", "stone"]]]`,
			wantErr: false,
		},
		{
			name:    "empty string rejected",
			cueData: `excludedDirs: [""]`,
			wantErr: true,
		},
		{
			name:    "empty segment list rejected",
			cueData: `excludedDirs: [[]]`,
			wantErr: true,
		},
		{
			name:    "empty segment rejected",
			cueData: `excludedDirs: [["entity", ""]]`,
			wantErr: true,
		},
		{
			name:    "number rejected",
			cueData: `excludedDirs: [42]`,
			wantErr: true,
		},
		{
			name:    "group that is not a list rejected",
			cueData: `compatibilityGroups: ["item"]`,
			wantErr: true,
		},
		{
			name:    "path over 4096 chars rejected",
			cueData: `excludedDirs: ["` + strings.Repeat("a", 4097) + `"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateCUE(t, tt.cueData)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestScalarConstraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cueData string
		wantErr bool
	}{
		{"png extension accepted", `extension: ".png"`, false},
		{"extension without dot rejected", `extension: "png"`, true},
		{"bare dot rejected", `extension: "."`, true},
		{"pack format accepted", `packFormat: 34`, false},
		{"zero pack format rejected", `packFormat: 0`, true},
		{"string pack format rejected", `packFormat: "15"`, true},
		{"description accepted", `description: "Shuffled!"`, false},
		{"description over 1024 chars rejected", `description: "` + strings.Repeat("d", 1025) + `"`, true},
		{"unknown field rejected", `resolution: 16`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateCUE(t, tt.cueData)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}
