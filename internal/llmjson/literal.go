package llmjson

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// evalLiteral evaluates a repaired candidate as a structured literal. The
// grammar accepts strict JSON plus the Python literal notation models also
// emit: single-quoted strings, True/False/None, and trailing commas in
// objects and arrays.
func evalLiteral(text string) (any, error) {
	s := &scanner{src: []rune(text)}
	v, err := s.value()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, fmt.Errorf("trailing content at offset %d", s.pos)
	}
	return v, nil
}

type scanner struct {
	src []rune
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) errf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

func (s *scanner) value() (any, error) {
	s.skipSpace()
	if s.eof() {
		return nil, s.errf("unexpected end of input")
	}
	switch c := s.peek(); {
	case c == '{':
		return s.object()
	case c == '[':
		return s.array()
	case c == '"' || c == '\'':
		return s.quoted()
	case c == '-' || c == '+' || unicode.IsDigit(c):
		return s.number()
	default:
		return s.word()
	}
}

func (s *scanner) object() (map[string]any, error) {
	s.pos++ // {
	obj := map[string]any{}
	s.skipSpace()
	if s.peek() == '}' {
		s.pos++
		return obj, nil
	}
	for {
		s.skipSpace()
		if s.peek() == '}' { // trailing comma
			s.pos++
			return obj, nil
		}
		key, err := s.quoted()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.peek() != ':' {
			return nil, s.errf("expected ':' after object key %q", key)
		}
		s.pos++
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		// Duplicate keys collide silently, last write wins.
		obj[key] = v

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case '}':
			s.pos++
			return obj, nil
		default:
			return nil, s.errf("expected ',' or '}' in object")
		}
	}
}

func (s *scanner) array() ([]any, error) {
	s.pos++ // [
	arr := []any{}
	s.skipSpace()
	if s.peek() == ']' {
		s.pos++
		return arr, nil
	}
	for {
		s.skipSpace()
		if s.peek() == ']' { // trailing comma
			s.pos++
			return arr, nil
		}
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return arr, nil
		default:
			return nil, s.errf("expected ',' or ']' in array")
		}
	}
}

// quoted reads a single- or double-quoted string with escape handling.
func (s *scanner) quoted() (string, error) {
	s.skipSpace()
	quote := s.peek()
	if quote != '"' && quote != '\'' {
		return "", s.errf("expected quoted string")
	}
	s.pos++

	var b strings.Builder
	for {
		if s.eof() {
			return "", s.errf("unterminated string")
		}
		c := s.src[s.pos]
		s.pos++
		switch {
		case c == quote:
			return b.String(), nil
		case c == '\\':
			if s.eof() {
				return "", s.errf("unterminated escape")
			}
			esc := s.src[s.pos]
			s.pos++
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case 'b':
				b.WriteRune('\b')
			case 'f':
				b.WriteRune('\f')
			case '/':
				b.WriteRune('/')
			case '\\', '"', '\'':
				b.WriteRune(esc)
			case 'u':
				r, err := s.unicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", s.errf("invalid escape %q", esc)
			}
		default:
			b.WriteRune(c)
		}
	}
}

func (s *scanner) unicodeEscape() (rune, error) {
	r1, err := s.hex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(r1) && s.pos+1 < len(s.src) && s.src[s.pos] == '\\' && s.src[s.pos+1] == 'u' {
		save := s.pos
		s.pos += 2
		r2, err := s.hex4()
		if err != nil {
			return 0, err
		}
		if r := utf16.DecodeRune(r1, r2); r != unicode.ReplacementChar {
			return r, nil
		}
		s.pos = save
	}
	return r1, nil
}

func (s *scanner) hex4() (rune, error) {
	if s.pos+4 > len(s.src) {
		return 0, s.errf("truncated \\u escape")
	}
	n, err := strconv.ParseUint(string(s.src[s.pos:s.pos+4]), 16, 32)
	if err != nil {
		return 0, s.errf("invalid \\u escape")
	}
	s.pos += 4
	return rune(n), nil
}

func (s *scanner) number() (any, error) {
	start := s.pos
	if c := s.peek(); c == '-' || c == '+' {
		s.pos++
	}
	for !s.eof() {
		c := s.src[s.pos]
		if unicode.IsDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '-' || c == '+' {
			s.pos++
			continue
		}
		break
	}
	lit := string(s.src[start:s.pos])
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, s.errf("invalid number %q", lit)
	}
	return f, nil
}

// word reads bare keywords in both JSON and Python spelling.
func (s *scanner) word() (any, error) {
	start := s.pos
	for !s.eof() && (unicode.IsLetter(s.src[s.pos]) || unicode.IsDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.pos++
	}
	switch string(s.src[start:s.pos]) {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "null", "None":
		return nil, nil
	default:
		s.pos = start
		return nil, s.errf("unexpected token")
	}
}
