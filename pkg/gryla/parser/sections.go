package parser

import (
	"bufio"
	"regexp"
	"strings"
)

// Section is one named subsection of a wiki page, together with its own
// text (excluding child sections) and nested children.
type Section struct {
	// Name is the heading text, surrounding equals signs stripped.
	Name string
	// Text is the section's own content up to its first child heading.
	Text string
	// Children are the nested subsections in page order.
	Children []*Section
}

// headingPattern matches wiki headings: two to six equals signs on each side
// of the title, alone on their line.
var headingPattern = regexp.MustCompile(`^(={2,6})\s*(.*?)\s*=+\s*$`)

// ParseSections builds the heading tree of one wiki page. The returned root
// carries the page's leading text; heading depth is the number of leading
// equals signs, and a heading closes every open section of equal or greater
// depth.
func ParseSections(page string) *Section {
	root := &Section{Name: "root"}
	type open struct {
		depth   int
		section *Section
		text    strings.Builder
	}
	stack := []*open{{depth: 1, section: root}}

	scanner := bufio.NewScanner(strings.NewReader(page))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			top := stack[len(stack)-1]
			if top.text.Len() > 0 {
				top.text.WriteByte('\n')
			}
			top.text.WriteString(line)
			continue
		}

		depth := len(m[1])
		section := &Section{Name: strings.TrimSpace(m[2])}
		for depth <= stack[len(stack)-1].depth && len(stack) > 1 {
			closed := stack[len(stack)-1]
			closed.section.Text = strings.TrimSpace(closed.text.String())
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.section.Children = append(parent.section.Children, section)
		stack = append(stack, &open{depth: depth, section: section})
	}
	for len(stack) > 0 {
		closed := stack[len(stack)-1]
		closed.section.Text = strings.TrimSpace(closed.text.String())
		stack = stack[:len(stack)-1]
	}
	return root
}
