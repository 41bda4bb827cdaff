package main

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"go.jvlang.dev/jv/jv"
	"go.jvlang.dev/jv/jvschema"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.json|file.yaml>",
		Short: "Browse a decoded JSON/YAML document as a jv.Value tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func runInspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	v, err := jvschema.DecodeYAML(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	defer v.Free()

	p := tea.NewProgram(newInspectModel(v))
	_, err = p.Run()
	return err
}

// treeLine is one visible row in the flattened tree view: a path segment
// label at a given indentation depth, plus the value it points to. path is
// the expansion-map key identifying this node's position in the tree.
type treeLine struct {
	path  string
	label string
	value jv.Value
	depth int
}

// inspectModel is the bubbletea model for the value-tree browser. It
// flattens the currently expanded portion of v into lines on every
// structural change, rather than re-walking the tree on every keypress.
type inspectModel struct {
	root     jv.Value
	expanded map[string]bool
	lines    []treeLine
	cursor   int
	height   int

	selectedStyle lipgloss.Style
	kindStyle     lipgloss.Style
}

func newInspectModel(root jv.Value) *inspectModel {
	m := &inspectModel{
		root:     root,
		expanded: map[string]bool{"": true},
		height:   24,

		selectedStyle: lipgloss.NewStyle().Bold(true).Reverse(true),
		kindStyle:     lipgloss.NewStyle().Faint(true),
	}
	m.rebuild()

	return m
}

func (m *inspectModel) rebuild() {
	m.lines = m.lines[:0]
	m.walk("", "root", m.root, 0)
}

func (m *inspectModel) walk(path, label string, v jv.Value, depth int) {
	m.lines = append(m.lines, treeLine{path: path, label: label, value: v, depth: depth})

	if !m.expanded[path] {
		return
	}

	switch v.Kind() {
	case jv.KindArray:
		for i := 0; i < v.ArrayLength(); i++ {
			child := v.ArrayGet(i)
			m.walk(fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("[%d]", i), child, depth+1)
		}
	case jv.KindObject:
		v.ObjectEach(func(k, val jv.Value) bool {
			key := k.StringValue()
			m.walk(path+"."+key, key, val, depth+1)
			return true
		})
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.toggleCursor()
		}
	}

	return m, nil
}

func (m *inspectModel) toggleCursor() {
	if m.cursor >= len(m.lines) {
		return
	}

	line := m.lines[m.cursor]
	if line.value.Kind() != jv.KindArray && line.value.Kind() != jv.KindObject {
		return
	}

	m.expanded[line.path] = !m.expanded[line.path]
	selected := line.path
	m.rebuild()

	for i, l := range m.lines {
		if l.path == selected {
			m.cursor = i
			break
		}
	}
}

func (m *inspectModel) View() tea.View {
	var b strings.Builder

	for i, line := range m.lines {
		indent := strings.Repeat("  ", line.depth)
		summary := summarize(line.value)

		var row string
		if i == m.cursor {
			row = m.selectedStyle.Render(fmt.Sprintf("%s%s: %s", indent, line.label, summary))
		} else {
			row = fmt.Sprintf("%s%s: %s", indent, line.label, m.kindStyle.Render(summary))
		}

		b.WriteString(row)
		b.WriteByte('\n')
	}

	v := tea.NewView(b.String())
	v.AltScreen = true

	return v
}

func summarize(v jv.Value) string {
	switch v.Kind() {
	case jv.KindNull:
		return "null"
	case jv.KindTrue:
		return "true"
	case jv.KindFalse:
		return "false"
	case jv.KindNumber:
		if lit, ok := v.NumberLiteral(); ok {
			return lit
		}
		return fmt.Sprintf("%g", v.NumberValue())
	case jv.KindString:
		return fmt.Sprintf("%q", v.StringValue())
	case jv.KindArray:
		return fmt.Sprintf("array(%d)", v.ArrayLength())
	case jv.KindObject:
		return fmt.Sprintf("object(%d)", v.ObjectLength())
	default:
		return "invalid"
	}
}
