package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StringList decodes a field that may arrive as a real JSON array, a JSON
// array literal stored inside a string, a bracketed single-quoted pseudo
// array ("['a', 'b']") or a plain comma separated string. Malformed input
// degrades to a best effort split, never an error.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err == nil {
			*l = trimAll(arr)
			return nil
		}
		*l = ParseList(string(data))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = nil
		return nil
	}
	*l = ParseList(s)
	return nil
}

// ParseList parses the string encoded list forms found in the source data.
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return trimAll(arr)
		}
		// bracketed pseudo array, usually single quoted
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.Trim(strings.TrimSpace(p), `'"`)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return trimAll(strings.Split(s, ","))
}

// SplitPipe splits a pipe delimited name list ("A | B|C") into trimmed names.
func SplitPipe(s string) []string {
	if s == "" {
		return nil
	}
	return trimAll(strings.Split(s, "|"))
}

func trimAll(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FlexBool accepts true, "true" and "1" as true; everything else is false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*b = true
	case len(data) >= 2 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*b = FlexBool(s == "true" || s == "1")
		} else {
			*b = false
		}
	default:
		*b = false
	}
	return nil
}

func (b FlexBool) Bool() bool { return bool(b) }

// FlexInt accepts a JSON number or a numeric string; anything else is zero.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*i = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*i = 0
			return nil
		}
		*i = FlexInt(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*i = 0
		return nil
	}
	*i = FlexInt(int(f))
	return nil
}

func (i FlexInt) Int() int { return int(i) }
