package registry

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	protoparser "github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"
)

// scanImports pulls every `import "...";` location out of an already
// go-protoparser-parsed file, skipping nothing — callers decide which
// imports (e.g. well-known types) are worth following.
func scanImports(p *parser.Proto) []string {
	var imports []string
	for _, v := range p.ProtoBody {
		if imp, ok := v.(*parser.Import); ok {
			imports = append(imports, strings.Trim(imp.Location, `"`))
		}
	}
	return imports
}

type protoFile struct {
	pkg        string
	messages   []*rawMessage
	enums      []*rawEnum
	extensions []*rawField // top-level `extend X { ... }` fields
}

type rawMessage struct {
	name                 string
	fields               []*rawField
	nested               []*rawMessage
	nestedEnums          []*rawEnum
	extensionRanges      []extRange
	messageSetWireFormat bool
}

type extRange struct{ start, end int32 }

type rawField struct {
	name     string
	typeName string
	number   int32
	repeated bool
	required bool
	packed   bool
	extendee string
}

type rawEnum struct {
	name   string
	values []rawEnumValue
}

type rawEnumValue struct {
	name   string
	number int32
}

var (
	packageRe    = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	messageOpen  = regexp.MustCompile(`\bmessage\s+(\w+)\s*\{`)
	enumOpen     = regexp.MustCompile(`\benum\s+(\w+)\s*\{`)
	extendOpen   = regexp.MustCompile(`\bextend\s+([\w.]+)\s*\{`)
	enumValueRe  = regexp.MustCompile(`^\s*(\w+)\s*=\s*(-?\d+)\s*(\[[^\]]*\])?\s*;`)
	extensionsRe = regexp.MustCompile(`^\s*extensions\s+(\d+)\s+to\s+(\d+|max)\s*;`)
	optionMsgSet = regexp.MustCompile(`option\s+message_set_wire_format\s*=\s*true\s*;`)
	fieldRe      = regexp.MustCompile(`^\s*(required|optional)?\s*(repeated)?\s*([\w.]+)\s+(\w+)\s*=\s*(\d+)\s*(\[[^\]]*\])?\s*;`)
)

// parseProtoFile extracts package/message/enum/field declarations from a
// `.proto` source file using go-protoparser to validate syntax (and to
// confirm the import graph already walked it) and a brace-tracking scan
// for the declarations themselves. See the package doc comment for what
// this intentionally does not attempt to understand.
func parseProtoFile(path string) (*protoFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := protoparser.Parse(strings.NewReader(string(data))); err != nil {
		return nil, errors.Wrapf(err, "invalid proto syntax")
	}

	text := stripComments(string(data))
	pf := &protoFile{}
	if m := packageRe.FindStringSubmatch(text); m != nil {
		pf.pkg = m[1]
	}

	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		mi := messageOpen.FindStringSubmatchIndex(rest)
		ei := enumOpen.FindStringSubmatchIndex(rest)
		xi := extendOpen.FindStringSubmatchIndex(rest)
		next, kind := nearest(mi, ei, xi)
		if kind == "" {
			pos = len(text)
			continue
		}
		switch kind {
		case "message":
			name := rest[next[2]:next[3]]
			bodyStart := pos + next[1]
			bodyEnd, body := extractBraceBody(text, bodyStart)
			pf.messages = append(pf.messages, parseMessageBody(name, body))
			pos = bodyEnd
		case "enum":
			name := rest[next[2]:next[3]]
			bodyStart := pos + next[1]
			bodyEnd, body := extractBraceBody(text, bodyStart)
			pf.enums = append(pf.enums, parseEnumBody(name, body))
			pos = bodyEnd
		case "extend":
			extendee := rest[next[2]:next[3]]
			bodyStart := pos + next[1]
			bodyEnd, body := extractBraceBody(text, bodyStart)
			for _, line := range strings.Split(body, "\n") {
				if f := parseFieldLine(line); f != nil {
					f.extendee = extendee
					pf.extensions = append(pf.extensions, f)
				}
			}
			pos = bodyEnd
		}
	}
	return pf, nil
}

// extractBraceBody returns the text between the `{` already consumed at
// openPos-1 and its matching `}`, plus the source position just past it.
func extractBraceBody(text string, openPos int) (int, string) {
	depth := 1
	i := openPos
	for i < len(text) && depth > 0 {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		i++
	}
	return i, text[openPos : i-1]
}

func parseMessageBody(name, body string) *rawMessage {
	rm := &rawMessage{name: name}
	if optionMsgSet.MatchString(body) {
		rm.messageSetWireFormat = true
	}

	pos := 0
	for pos < len(body) {
		rest := body[pos:]
		mi := messageOpen.FindStringSubmatchIndex(rest)
		ei := enumOpen.FindStringSubmatchIndex(rest)
		xi := extendOpen.FindStringSubmatchIndex(rest)

		next, kind := nearest(mi, ei, xi)
		if kind == "" {
			scanTrailingDeclarations(rest, rm)
			break
		}
		scanTrailingDeclarations(rest[:next[0]], rm)

		switch kind {
		case "message":
			nestedName := rest[next[2]:next[3]]
			bodyStart := pos + next[1]
			bodyEnd, nestedBody := extractBraceBody(body, bodyStart)
			rm.nested = append(rm.nested, parseMessageBody(nestedName, nestedBody))
			pos = bodyEnd
		case "enum":
			nestedName := rest[next[2]:next[3]]
			bodyStart := pos + next[1]
			bodyEnd, nestedBody := extractBraceBody(body, bodyStart)
			rm.nestedEnums = append(rm.nestedEnums, parseEnumBody(nestedName, nestedBody))
			pos = bodyEnd
		case "extend":
			extendee := rest[next[2]:next[3]]
			bodyStart := pos + next[1]
			bodyEnd, extendBody := extractBraceBody(body, bodyStart)
			for _, line := range strings.Split(extendBody, "\n") {
				if f := parseFieldLine(line); f != nil {
					f.extendee = extendee
					rm.fields = append(rm.fields, f)
				}
			}
			pos = bodyEnd
		}
	}
	return rm
}

func nearest(candidates ...[]int) ([]int, string) {
	kinds := []string{"message", "enum", "extend"}
	var best []int
	bestKind := ""
	for i, c := range candidates {
		if c == nil {
			continue
		}
		if best == nil || c[0] < best[0] {
			best = c
			bestKind = kinds[i]
		}
	}
	return best, bestKind
}

func scanTrailingDeclarations(segment string, rm *rawMessage) {
	for _, line := range strings.Split(segment, "\n") {
		if m := extensionsRe.FindStringSubmatch(line); m != nil {
			start, _ := strconv.Atoi(m[1])
			end := int32(1<<29 - 1)
			if m[2] != "max" {
				e, _ := strconv.Atoi(m[2])
				end = int32(e) + 1
			}
			rm.extensionRanges = append(rm.extensionRanges, extRange{start: int32(start), end: end})
			continue
		}
		if f := parseFieldLine(line); f != nil {
			rm.fields = append(rm.fields, f)
		}
	}
}

func parseFieldLine(line string) *rawField {
	m := fieldRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	number, err := strconv.Atoi(m[5])
	if err != nil {
		return nil
	}
	opts := strings.ReplaceAll(m[6], " ", "")
	return &rawField{
		name:     m[4],
		typeName: m[3],
		number:   int32(number),
		repeated: m[2] == "repeated",
		required: m[1] == "required",
		packed:   strings.Contains(opts, "packed") && !strings.Contains(opts, "packed=false"),
	}
}

func parseEnumBody(name, body string) *rawEnum {
	re := &rawEnum{name: name}
	for _, line := range strings.Split(body, "\n") {
		m := enumValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		re.values = append(re.values, rawEnumValue{name: m[1], number: int32(n)})
	}
	return re
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

func stripComments(s string) string {
	s = blockComment.ReplaceAllString(s, "")
	s = lineComment.ReplaceAllString(s, "")
	return s
}
