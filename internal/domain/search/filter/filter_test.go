package filter

import "testing"

func TestCompile_SingleFilter(t *testing.T) {
	s := New("", "ai", "")
	if got := s.Compile(); got != "category eq 'ai'" {
		t.Errorf("Compile() = %q", got)
	}
}

func TestCompile_AllFilters(t *testing.T) {
	s := New("smith", "ai", "2024-01-01")
	want := "author eq 'smith' and category eq 'ai' and date eq '2024-01-01'"
	if got := s.Compile(); got != want {
		t.Errorf("Compile() = %q, want %q", got, want)
	}
}

func TestCompile_FixedKeyOrder(t *testing.T) {
	// Order is author, category, date regardless of construction order.
	s := New("smith", "", "2024-01-01")
	want := "author eq 'smith' and date eq '2024-01-01'"
	if got := s.Compile(); got != want {
		t.Errorf("Compile() = %q, want %q", got, want)
	}
}

func TestCompile_Empty(t *testing.T) {
	s := New("", "", "")
	if got := s.Compile(); got != "" {
		t.Errorf("Compile() = %q for empty set", got)
	}
	if !s.IsEmpty() {
		t.Error("IsEmpty() = false for empty set")
	}
}

func TestCompile_BlankValuesSkipped(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tab", "\t"},
		{"newline", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.value, "ai", "")
			if got := s.Compile(); got != "category eq 'ai'" {
				t.Errorf("Compile() = %q", got)
			}
		})
	}
}

func TestCompile_EscapesSingleQuotes(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   string
	}{
		{"apostrophe", "o'brien", "author eq 'o''brien'"},
		{"injection attempt", "x' or author ne '", "author eq 'x'' or author ne '''"},
		{"only quotes", "''", "author eq ''''''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.author, "", "")
			if got := s.Compile(); got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_PreservesInteriorWhitespace(t *testing.T) {
	// Non-blank values pass through verbatim, padding included.
	s := New(" jane smith ", "", "")
	if got := s.Author(); got != " jane smith " {
		t.Errorf("Author() = %q", got)
	}
	if got := s.Compile(); got != "author eq ' jane smith '" {
		t.Errorf("Compile() = %q", got)
	}
}

func TestSet_Accessors(t *testing.T) {
	s := New("smith", "ai", "2024-01-01")
	if s.Author() != "smith" {
		t.Errorf("Author() = %q", s.Author())
	}
	if s.Category() != "ai" {
		t.Errorf("Category() = %q", s.Category())
	}
	if s.Date() != "2024-01-01" {
		t.Errorf("Date() = %q", s.Date())
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true for populated set")
	}
}
