package docs

import (
	"bytes"
	"strings"
)

// stripModuleLines removes top-level MDX import/export statements, which have
// no meaning outside a JSX runtime. Fenced code blocks are left untouched.
func stripModuleLines(body []byte) []byte {
	lines := strings.Split(string(body), "\n")
	out := make([]string, 0, len(lines))

	var fence string
	depth := 0
	inStatement := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			out = append(out, line)
			continue
		}
		if inStatement {
			depth += bracketDelta(trimmed)
			inStatement = !statementEnds(trimmed, depth)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		case isModuleLine(line):
			depth = bracketDelta(trimmed)
			inStatement = !statementEnds(trimmed, depth)
			continue
		}
		out = append(out, line)
	}
	return bytes.TrimLeft([]byte(strings.Join(out, "\n")), "\n")
}

// Module lines start in column zero, as MDX requires.
func isModuleLine(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")
}

// A statement ends once its brackets are balanced and the line does not
// continue onto the next one.
func statementEnds(trimmed string, depth int) bool {
	if depth > 0 {
		return false
	}
	for _, cont := range []string{",", "=", "=>", "(", "{", "["} {
		if strings.HasSuffix(trimmed, cont) {
			return false
		}
	}
	return true
}

// bracketDelta counts opening minus closing brackets outside string literals.
func bracketDelta(line string) int {
	delta := 0
	var quote rune
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '{' || r == '(' || r == '[':
			delta++
		case r == '}' || r == ')' || r == ']':
			delta--
		}
	}
	return delta
}
