package css

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses inline style attributes into structured declarations.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseInline parses content of a style attribute. It never fails: malformed
// declarations are skipped, and for repeated properties the last one wins
// keeping position of the first.
func (p *Parser) ParseInline(style string) *Style {
	st := &Style{}
	if strings.TrimSpace(style) == "" {
		return st
	}

	parser := css.NewParser(parse.NewInputString(style), true)

	// every grammar item consumes at least one byte of input
	for range len(style) + 2 {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			var perr *parse.Error
			if errors.As(parser.Err(), &perr) {
				p.log.Debug("Skipping malformed declaration", zap.String("style", style), zap.Error(perr))
				continue
			}
			return st

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			values, important := stripImportant(values)
			st.Set(Declaration{
				Property:  strings.ToLower(string(data)),
				Value:     p.parsePropertyValue(values),
				Important: important,
			})

		case css.CustomPropertyGrammar:
			var raw strings.Builder
			for _, t := range parser.Values() {
				raw.Write(t.Data)
			}
			v := strings.TrimSpace(raw.String())
			st.Set(Declaration{Property: string(data), Value: Value{Raw: v, Keyword: v}})
		}
	}
	p.log.Debug("Style parsing did not reach end of input", zap.String("style", style))
	return st
}

// ParseDeclarations is a shortcut for building style from Go code:
// ParseDeclarations("width", "50%", "box-sizing", "border-box").
func (p *Parser) ParseDeclarations(pairs ...string) *Style {
	var sb strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		sb.WriteString(pairs[i])
		sb.WriteString(": ")
		sb.WriteString(pairs[i+1])
		sb.WriteString("; ")
	}
	return p.ParseInline(sb.String())
}

// stripImportant removes trailing "!important" from declaration tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end < 2 {
		return tokens, false
	}
	last := tokens[end-1]
	if last.TokenType != css.IdentToken || !strings.EqualFold(string(last.Data), "important") {
		return tokens, false
	}
	bang := end - 2
	for bang > 0 && tokens[bang].TokenType == css.WhitespaceToken {
		bang--
	}
	if tokens[bang].TokenType != css.DelimToken || string(tokens[bang].Data) != "!" {
		return tokens, false
	}
	return tokens[:bang], true
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return Value{}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw}

	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			// Color value
			val.Keyword = strings.ToLower(string(t.Data))
		default:
			val.Keyword = raw
		}
		return val
	}

	// Functions (rgb(), linear-gradient(), calc()) and multi-value
	// properties are stored as keyword with raw value
	val.Keyword = raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	// Find where number ends
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
