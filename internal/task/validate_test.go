package task

import (
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["task"],
    "properties": {
      "task": { "type": "string" }
    },
    "additionalProperties": false
  }
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestValidateMinimal(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{name: "valid list", content: `[{"task": "a"}, {"task": ""}]`, valid: true},
		{name: "empty array", content: `[]`, valid: true},
		{name: "not an array", content: `{"task": "a"}`, valid: false},
		{name: "entry not an object", content: `["a"]`, valid: false},
		{name: "missing task field", content: `[{"todo": "a"}]`, valid: false},
		{name: "task not a string", content: `[{"task": 7}]`, valid: false},
		{name: "not JSON", content: `nope`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s := NewStore(writeFixture(t, dir, "tasks.json", tt.content))

			result := s.Validate(ValidationOptions{})
			if result.Valid != tt.valid {
				t.Errorf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			if result.UsedSchema {
				t.Error("expected minimal validation, schema was used")
			}
			if !tt.valid && len(result.Errors) == 0 {
				t.Error("invalid result carries no errors")
			}
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tasks.json"))

	result := s.Validate(ValidationOptions{})
	if !result.Valid {
		t.Errorf("missing file should validate as empty, got errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the missing file")
	}
}

func TestValidateWithSchema(t *testing.T) {
	t.Run("valid file passes schema", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(writeFixture(t, dir, "tasks.json", `[{"task": "a"}]`))
		schemaPath := writeFixture(t, dir, "tasks.schema.json", testSchema)

		result := s.Validate(ValidationOptions{SchemaPath: schemaPath})
		if !result.UsedSchema {
			t.Fatalf("expected schema validation, warnings: %v", result.Warnings)
		}
		if !result.Valid {
			t.Errorf("expected valid, got errors: %v", result.Errors)
		}
	})

	t.Run("extra fields rejected by schema", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(writeFixture(t, dir, "tasks.json", `[{"task": "a", "done": true}]`))
		schemaPath := writeFixture(t, dir, "tasks.schema.json", testSchema)

		result := s.Validate(ValidationOptions{SchemaPath: schemaPath})
		if !result.UsedSchema {
			t.Fatalf("expected schema validation, warnings: %v", result.Warnings)
		}
		if result.Valid {
			t.Error("expected invalid for additional properties")
		}
	})

	t.Run("missing schema file falls back to minimal checks", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(writeFixture(t, dir, "tasks.json", `[{"task": "a"}]`))

		result := s.Validate(ValidationOptions{SchemaPath: filepath.Join(dir, "nope.schema.json")})
		if result.UsedSchema {
			t.Error("schema validation should not run without a schema file")
		}
		if !result.Valid {
			t.Errorf("expected valid via minimal checks, got errors: %v", result.Errors)
		}
		if len(result.Warnings) == 0 {
			t.Error("expected a warning about the missing schema")
		}
	})
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{ptr: "", want: ""},
		{ptr: "#", want: ""},
		{ptr: "#/0/task", want: "[0].task"},
		{ptr: "/2", want: "[2]"},
	}

	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
