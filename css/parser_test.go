package css_test

import (
	"testing"

	"go.uber.org/zap"

	"lbe/css"
)

func TestParser_ParseInline_Empty(t *testing.T) {
	p := css.NewParser(nil)

	for _, in := range []string{"", "   ", ";"} {
		st := p.ParseInline(in)
		if st.Len() != 0 {
			t.Errorf("ParseInline(%q) = %d declarations, want 0", in, st.Len())
		}
		if st.String() != "" {
			t.Errorf("ParseInline(%q).String() = %q, want empty", in, st.String())
		}
	}
}

func TestParser_ParseInline_Order(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("color: red; padding: 16px;margin:0 auto")
	got := st.Properties()
	want := []string{"color", "padding", "margin"}
	if len(got) != len(want) {
		t.Fatalf("Properties() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Properties()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	v, ok := st.Get("margin")
	if !ok {
		t.Fatal("expected margin property")
	}
	if v.Raw != "0 auto" {
		t.Errorf("margin raw = %q, want %q", v.Raw, "0 auto")
	}
}

func TestParser_NumericValues(t *testing.T) {
	log := zap.NewNop()
	p := css.NewParser(log)

	tests := []struct {
		css     string
		prop    string
		value   float64
		unit    string
		keyword string
	}{
		{`font-size: 1.2em`, "font-size", 1.2, "em", ""},
		{`width: 100%`, "width", 100, "%", ""},
		{`width: 12px`, "width", 12, "px", ""},
		{`font-size: 12pt`, "font-size", 12, "pt", ""},
		{`line-height: 1.5`, "line-height", 1.5, "", ""},
		{`margin-top: -0.5em`, "margin-top", -0.5, "em", ""},
		{`text-align: center`, "text-align", 0, "", "center"},
		{`font-weight: bold`, "font-weight", 0, "", "bold"},
		{`color: #FFAA00`, "color", 0, "", "#ffaa00"},
	}

	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			st := p.ParseInline(tt.css)
			if st.Len() != 1 {
				t.Fatalf("expected 1 declaration, got %d", st.Len())
			}

			val, ok := st.Get(tt.prop)
			if !ok {
				t.Fatalf("expected property %s", tt.prop)
			}

			if tt.unit != "" || tt.value != 0 {
				if val.Value != tt.value {
					t.Errorf("expected value %v, got %v", tt.value, val.Value)
				}
				if val.Unit != tt.unit {
					t.Errorf("expected unit '%s', got '%s'", tt.unit, val.Unit)
				}
			}
			if tt.keyword != "" {
				if val.Keyword != tt.keyword {
					t.Errorf("expected keyword '%s', got '%s'", tt.keyword, val.Keyword)
				}
			}
		})
	}
}

func TestParser_DimensionEdgeCases(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		name      string
		css       string
		wantValue float64
		wantUnit  string
	}{
		{"fractional-only .5em", `margin-top: .5em`, 0.5, "em"},
		{"positive sign +1px", `margin-top: +1px`, 1, "px"},
		{"negative value -3px", `margin-top: -3px`, -3, "px"},
		{"zero with unit 0px", `margin-top: 0px`, 0, "px"},
		{"negative fractional -.25rem", `margin-top: -.25rem`, -0.25, "rem"},
		{"unit is lowercased 12PX -> px", `margin-top: 12PX`, 12, "px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := p.ParseInline(tt.css).Get("margin-top")
			if !ok {
				t.Fatal("expected margin-top property")
			}
			if val.Value != tt.wantValue {
				t.Errorf("expected value %v, got %v", tt.wantValue, val.Value)
			}
			if val.Unit != tt.wantUnit {
				t.Errorf("expected unit %q, got %q", tt.wantUnit, val.Unit)
			}
		})
	}
}

func TestParser_ShorthandAndFunctions(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline(`margin: 1em 2em 3em 4em; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1); width: calc(100% + 32px)`)

	tests := []struct {
		prop string
		raw  string
	}{
		{"margin", "1em 2em 3em 4em"},
		{"box-shadow", "0 2px 4px rgba(0, 0, 0, 0.1)"},
		{"width", "calc(100% + 32px)"},
	}
	for _, tt := range tests {
		val, ok := st.Get(tt.prop)
		if !ok {
			t.Errorf("expected %s property", tt.prop)
			continue
		}
		if val.Raw != tt.raw {
			t.Errorf("%s raw = %q, want %q", tt.prop, val.Raw, tt.raw)
		}
		if val.Keyword != tt.raw {
			t.Errorf("%s should be stored as keyword with raw value, got %q", tt.prop, val.Keyword)
		}
	}
}

func TestParser_Important(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("width: 50% !important; color: blue")
	var decls []css.Declaration
	for d := range st.All() {
		decls = append(decls, d)
	}
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if !decls[0].Important {
		t.Error("width should be important")
	}
	if decls[0].Value.Raw != "50%" || decls[0].Value.Unit != "%" {
		t.Errorf("width value = %+v, want 50%%", decls[0].Value)
	}
	if decls[1].Important {
		t.Error("color should not be important")
	}
	if got, want := st.String(), "width: 50% !important; color: blue;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParser_DuplicateLastWins(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("width: 10px; color: red; WIDTH: 20px")
	if st.Len() != 2 {
		t.Fatalf("expected 2 declarations, got %d", st.Len())
	}
	if got, want := st.String(), "width: 20px; color: red;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParser_MalformedDeclarationSkipped(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("color red; width: 10px")
	if _, ok := st.Get("width"); !ok {
		t.Errorf("valid declaration after malformed one should survive, got %q", st.String())
	}
}

func TestParser_CustomProperty(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseInline("--accent: #f60; color: var(--accent)")
	if !st.Has("--accent") {
		t.Fatalf("expected custom property, got %q", st.String())
	}
	if v, _ := st.Get("color"); v.Raw != "var(--accent)" {
		t.Errorf("color raw = %q, want var(--accent)", v.Raw)
	}
}

func TestParser_StringRoundTrip(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	inputs := []string{
		"color: red",
		"padding: 16px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1)",
		"width: calc(100% + 32px); max-width: none; margin-left: -16px; margin-right: -16px",
		"background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white",
	}
	for _, in := range inputs {
		first := p.ParseInline(in).String()
		second := p.ParseInline(first).String()
		if first != second {
			t.Errorf("String() is not stable:\n first: %q\nsecond: %q", first, second)
		}
	}
}

func TestParser_ParseDeclarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	st := p.ParseDeclarations("width", "50%", "box-sizing", "border-box")
	if got, want := st.String(), "width: 50%; box-sizing: border-box;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestValue_IsNumeric(t *testing.T) {
	tests := []struct {
		val  css.Value
		want bool
	}{
		{css.Value{Raw: "1em", Value: 1, Unit: "em"}, true},
		{css.Value{Raw: "0", Value: 0}, true},
		{css.Value{Raw: "100%", Value: 100, Unit: "%"}, true},
		{css.Value{Raw: "-0.5em", Value: -0.5, Unit: "em"}, true},
		{css.Value{Raw: "bold", Keyword: "bold"}, false},
		{css.Value{Raw: "italic", Keyword: "italic"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.val.Raw, func(t *testing.T) {
			if got := tt.val.IsNumeric(); got != tt.want {
				t.Errorf("Value{Raw: %q}.IsNumeric() = %v, want %v", tt.val.Raw, got, tt.want)
			}
		})
	}
}

func TestValue_IsKeyword(t *testing.T) {
	tests := []struct {
		val  css.Value
		want bool
	}{
		{css.Value{Keyword: "bold"}, true},
		{css.Value{Keyword: "italic"}, true},
		{css.Value{Value: 1, Unit: "em"}, false},
		{css.Value{Raw: "0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.val.Keyword+tt.val.Raw, func(t *testing.T) {
			if got := tt.val.IsKeyword(); got != tt.want {
				t.Errorf("Value.IsKeyword() = %v, want %v", got, tt.want)
			}
		})
	}
}
