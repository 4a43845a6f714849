package database

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
		{
			name:    "single statement",
			content: "CREATE TABLE a (id INT);",
			want:    []string{"CREATE TABLE a (id INT);"},
		},
		{
			name: "comments and blank lines dropped",
			content: `-- header
CREATE TABLE a (
    id INT
);

-- second
CREATE INDEX idx_a ON a(id);
`,
			want: []string{"CREATE TABLE a (\n    id INT\n);", "CREATE INDEX idx_a ON a(id);"},
		},
		{
			name:    "trailing statement without semicolon",
			content: "SELECT 1;\nSELECT 2",
			want:    []string{"SELECT 1;", "SELECT 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitStatements(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitStatements() = %q, want %q", got, tt.want)
			}
		})
	}
}
