package bashout

import "testing"

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "main", "'main'"},
		{"empty", "", "''"},
		{"spaces", "feature branch", "'feature branch'"},
		{"single quote", "it's", `'it'\''s'`},
		{"backslash", `a\b`, `'a\\b'`},
		{"backslash then quote", `a\'b`, `'a\\'\''b'`},
		{"dollar stays literal", "$HOME", "'$HOME'"},
		{"backtick stays literal", "`id`", "'`id`'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.input); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestScalar(t *testing.T) {
	got := Scalar("branch_current", "main")
	want := "declare branch_current='main'"
	if got != want {
		t.Errorf("Scalar() = %q, want %q", got, want)
	}
}

func TestInt(t *testing.T) {
	got := Int("branch_count", 3)
	want := "declare -i branch_count=3"
	if got != want {
		t.Errorf("Int() = %q, want %q", got, want)
	}
}

func TestArray(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"empty", nil, "declare -a branches=()"},
		{"single", []string{"main"}, "declare -a branches=('main')"},
		{"multiple", []string{"main", "dev branch"}, "declare -a branches=('main' 'dev branch')"},
		{"quoting", []string{"it's"}, `declare -a branches=('it'\''s')`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Array("branches", tt.values); got != tt.want {
				t.Errorf("Array() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIntArray(t *testing.T) {
	got := IntArray("selected", []int{0, 2, 5})
	want := "declare -a selected=(0 2 5)"
	if got != want {
		t.Errorf("IntArray() = %q, want %q", got, want)
	}
}

func TestLines(t *testing.T) {
	got := Lines(Int("n", 1), Scalar("s", "x"))
	want := "declare -i n=1\ndeclare s='x'"
	if got != want {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}
