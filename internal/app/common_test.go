package app

import (
	"reflect"
	"testing"
)

func TestParseRuleSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		lhs     []string
		rhs     []string
		wantErr bool
	}{
		{
			name: "single items",
			spec: "eggs => bacon",
			lhs:  []string{"eggs"},
			rhs:  []string{"bacon"},
		},
		{
			name: "multi-item lhs",
			spec: "butter, jam => bread",
			lhs:  []string{"butter", "jam"},
			rhs:  []string{"bread"},
		},
		{
			name: "no whitespace",
			spec: "a,b=>c,d",
			lhs:  []string{"a", "b"},
			rhs:  []string{"c", "d"},
		},
		{
			name:    "missing arrow",
			spec:    "eggs bacon",
			wantErr: true,
		},
		{
			name:    "empty lhs",
			spec:    " => bacon",
			wantErr: true,
		},
		{
			name:    "empty rhs",
			spec:    "eggs => ",
			wantErr: true,
		},
		{
			name:    "two arrows",
			spec:    "a => b => c",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lhs, rhs, err := parseRuleSpec(tt.spec)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseRuleSpec(%q) expected error, got lhs=%v rhs=%v", tt.spec, lhs, rhs)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRuleSpec(%q) error = %v", tt.spec, err)
			}
			if !reflect.DeepEqual(lhs, tt.lhs) {
				t.Errorf("lhs = %v, want %v", lhs, tt.lhs)
			}
			if !reflect.DeepEqual(rhs, tt.rhs) {
				t.Errorf("rhs = %v, want %v", rhs, tt.rhs)
			}
		})
	}
}

func TestSplitItems(t *testing.T) {
	got := splitItems("  whole milk , yogurt ,, ")
	want := []string{"whole milk", "yogurt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitItems() = %v, want %v", got, want)
	}
}

func TestNewFileSourceDefaults(t *testing.T) {
	src := newFileSource("baskets.csv", ",")
	if src.Path != "baskets.csv" {
		t.Errorf("Path = %q, want baskets.csv", src.Path)
	}
	if src.Separator != "," {
		t.Errorf("Separator = %q, want ,", src.Separator)
	}
}
