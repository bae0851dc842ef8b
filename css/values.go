package css

import (
	"strconv"
	"strings"
)

// IsZero reports numeric zero ("0", "0px", "0%").
func (v Value) IsZero() bool {
	return v.IsNumeric() && v.Value == 0 && v.Keyword == ""
}

// IsGradient reports any *-gradient() function in the value.
func (v Value) IsGradient() bool {
	return strings.Contains(strings.ToLower(v.Raw), "gradient(")
}

// IsTransparent reports values which paint nothing: transparent and global
// keywords, fully transparent rgba/hsla and 4/8 digit hex colors with zero
// alpha.
func (v Value) IsTransparent() bool {
	raw := strings.ToLower(strings.TrimSpace(v.Raw))
	switch raw {
	case "", "transparent", "none", "initial", "inherit", "unset", "revert":
		return true
	}
	if strings.HasPrefix(raw, "#") {
		switch hex := raw[1:]; len(hex) {
		case 4:
			return hex[3] == '0'
		case 8:
			return hex[6:] == "00"
		}
		return false
	}
	if (strings.HasPrefix(raw, "rgba(") || strings.HasPrefix(raw, "hsla(") ||
		strings.HasPrefix(raw, "rgb(") || strings.HasPrefix(raw, "hsl(")) && strings.HasSuffix(raw, ")") {
		args := raw[strings.IndexByte(raw, '(')+1 : len(raw)-1]
		var alpha string
		if i := strings.LastIndexByte(args, '/'); i >= 0 {
			alpha = args[i+1:]
		} else if parts := strings.Split(args, ","); len(parts) == 4 {
			alpha = parts[3]
		} else {
			return false
		}
		alpha = strings.TrimSuffix(strings.TrimSpace(alpha), "%")
		if f, err := strconv.ParseFloat(alpha, 64); err == nil {
			return f == 0
		}
	}
	return false
}

// IsVisibleLine reports whether a border shorthand or border width draws
// anything. Zero widths and none/hidden styles do not.
func (v Value) IsVisibleLine() bool {
	fields := strings.Fields(strings.ToLower(v.Raw))
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		switch f {
		case "none", "hidden", "0":
			return false
		}
		if num, unit := parseDimension(f); num == 0 && unit != "" && f[0] == '0' {
			return false
		}
	}
	return true
}

// HasNonZero reports whether any numeric component of a (possibly
// shorthand) value is not zero: "0 0 0 8px" is non-zero, "0" and "0px 0" are
// not.
func (v Value) HasNonZero() bool {
	for f := range strings.FieldsSeq(strings.ToLower(v.Raw)) {
		num, _ := parseDimension(f)
		if num != 0 {
			return true
		}
		if f != "" && (f[0] < '0' || f[0] > '9') && f[0] != '.' && f[0] != '-' && f[0] != '+' {
			// calc(), var() and keywords like "auto"
			return true
		}
	}
	return false
}
