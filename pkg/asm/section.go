package asm

import (
	"strings"

	"github.com/golang/glog"
)

// Line is one source line. Text is trimmed and upper-cased.
type Line struct {
	Number int // 1-based
	Text   string
}

// SplitLines splits source text into normalized lines.
func SplitLines(text string) []Line {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Line{Number: i + 1, Text: strings.ToUpper(strings.TrimSpace(r))}
	}
	return lines
}

// SectionID names one of the three program sections.
type SectionID string

const (
	ReadOnly           SectionID = "READ-ONLY"
	ReadWrite          SectionID = "READ-WRITE"
	InstructionSection SectionID = "INSTRUCTION"
)

const sectionDirective = ".SECTION"

// Section is the block of lines following a section header.
type Section struct {
	ID         SectionID
	HeaderLine int
	Lines      []Line
}

func isHeader(tokens []string) bool {
	return len(tokens) > 0 && tokens[0] == sectionDirective
}

// Sectionize groups lines by section header. Only blank and comment lines may
// precede the first header. A header that repeats an identifier replaces the
// block collected for the earlier one.
func Sectionize(lines []Line, source string) (map[SectionID]Section, error) {
	sections := make(map[SectionID]Section)

	i := 0
	for ; i < len(lines); i++ {
		tokens := strings.Fields(lines[i].Text)
		if isHeader(tokens) {
			break
		}
		if len(tokens) != 0 && !IsComment(lines[i].Text) {
			return nil, atLine(newError(KindSection, "text has no section"), lines[i], source)
		}
	}

	var cur *Section
	for ; i < len(lines); i++ {
		line := lines[i]
		tokens := strings.Fields(line.Text)
		if !isHeader(tokens) {
			cur.Lines = append(cur.Lines, line)
			continue
		}

		if len(tokens) != 2 {
			return nil, atLine(newError(KindSection, "invalid number of arguments in section header"), line, source)
		}
		if !IsSectionIdentifier(tokens[1]) {
			return nil, atLine(newError(KindSection, "unknown section identifier %q", tokens[1]), line, source)
		}
		if cur != nil {
			commit(sections, *cur)
		}
		cur = &Section{ID: SectionID(tokens[1]), HeaderLine: line.Number}
	}
	if cur != nil {
		commit(sections, *cur)
	}
	return sections, nil
}

func commit(sections map[SectionID]Section, s Section) {
	if prev, ok := sections[s.ID]; ok {
		glog.V(1).Infof("section %s at line %d replaces the one at line %d", s.ID, s.HeaderLine, prev.HeaderLine)
	}
	sections[s.ID] = s
}
