package latex

import "strings"

// Fragment is a piece of LaTeX output. It is one of [Text], [Group] or
// [Seq].
type Fragment interface {
	write(b *strings.Builder)
}

// Text is literal LaTeX source.
type Text string

// Group is a brace group. A protected group keeps its braces even when it
// holds a single character.
type Group struct {
	Protected bool
	Parts     Seq
}

// Seq is a concatenation of fragments.
type Seq []Fragment

func (t Text) write(b *strings.Builder) { b.WriteString(string(t)) }

func (g Group) write(b *strings.Builder) {
	b.WriteByte('{')
	g.Parts.write(b)
	b.WriteByte('}')
}

func (s Seq) write(b *strings.Builder) {
	for _, f := range s {
		f.write(b)
	}
}

// String renders f as LaTeX source.
func String(f Fragment) string {
	var b strings.Builder
	f.write(&b)
	return b.String()
}

// Simplify removes the braces of every unprotected group holding exactly
// one character and strips spaces from text. Groups are collapsed bottom-up,
// so {{x}} becomes x. Simplifying a simplified fragment returns it
// unchanged.
func Simplify(f Fragment) Fragment {
	switch v := f.(type) {
	case Text:
		return Text(strings.ReplaceAll(string(v), " ", ""))
	case Seq:
		out := make(Seq, 0, len(v))
		for _, p := range v {
			out = append(out, Simplify(p))
		}
		return out
	case Group:
		parts := Simplify(v.Parts).(Seq)
		if !v.Protected {
			if s, ok := plain(parts); ok && len([]rune(s)) == 1 {
				return Text(s)
			}
		}
		return Group{Protected: v.Protected, Parts: parts}
	}
	return f
}

// plain returns the text of s when it holds no groups.
func plain(s Seq) (string, bool) {
	var b strings.Builder
	for _, f := range s {
		switch v := f.(type) {
		case Text:
			b.WriteString(string(v))
		case Seq:
			inner, ok := plain(v)
			if !ok {
				return "", false
			}
			b.WriteString(inner)
		default:
			return "", false
		}
	}
	return b.String(), true
}

// SimplifyString applies [Simplify] to arbitrary LaTeX source. Escaped
// braces (\{ and \}) are literal text. Unbalanced braces are kept as text.
func SimplifyString(s string) string {
	p := parser{src: s}
	seq, _ := p.seq(false)
	return String(Simplify(seq))
}

type parser struct {
	src string
	pos int
}

// seq parses until the end of input or, inside a group, the closing brace.
// It reports whether the group was closed.
func (p *parser) seq(inGroup bool) (Seq, bool) {
	var out Seq
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Text(text.String()))
			text.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src) && strings.IndexByte(`{}\`, p.src[p.pos+1]) >= 0:
			text.WriteString(p.src[p.pos : p.pos+2])
			p.pos += 2
		case c == '{':
			p.pos++
			flush()
			inner, closed := p.seq(true)
			if closed {
				out = append(out, Group{Parts: inner})
			} else {
				out = append(out, Text("{"))
				out = append(out, inner...)
			}
		case c == '}' && inGroup:
			p.pos++
			flush()
			return out, true
		default:
			text.WriteByte(c)
			p.pos++
		}
	}
	flush()
	return out, false
}
