package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/handle"
	"github.com/wlkit/wlkit/manager"
	"github.com/wlkit/wlkit/output"
	"github.com/wlkit/wlkit/scenario"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	deadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const eventLogSize = 8

type simModel struct {
	be     *backend.Backend
	bridge *manager.Bridge
	layout *output.Layout

	input  textinput.Model
	events []string
	status string
	isErr  bool
}

func newSimModel(scenarioFile string) (*simModel, error) {
	be := backend.New()
	layout := output.NewLayout()

	m := &simModel{
		be:     be,
		layout: layout,
	}
	handle.Subscribe(m)

	m.bridge = manager.New(be, manager.Config{
		Layout:    layout.WeakReference(),
		UseLayout: true,
	})

	if scenarioFile != "" {
		sc, err := scenario.Load(scenarioFile)
		if err != nil {
			return nil, err
		}
		player := scenario.NewPlayer(be, sc)
		if err := player.Setup(); err != nil {
			return nil, err
		}
		m.status = fmt.Sprintf("scenario %q set up; drive events by hand", sc.Name)
	}

	ti := textinput.New()
	ti.Placeholder = "destroy DP-1"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	m.input = ti

	return m, nil
}

// OnResourceEvent implements handle.Observer; every lifecycle transition
// lands in the on-screen log.
func (m *simModel) OnResourceEvent(e handle.Event) {
	line := fmt.Sprintf("%-9s %s %s", e.Type, e.Kind, e.ID)
	m.events = append(m.events, line)
	if len(m.events) > eventLogSize {
		m.events = m.events[len(m.events)-eventLogSize:]
	}
}

func (m *simModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			handle.Unsubscribe(m)
			m.bridge.Close()
			m.layout.Drop()
			m.be.Close()
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line != "" {
				m.runCommand(line)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *simModel) runCommand(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "quit", "q":
		// Handled as a command so "q" can be typed at the prompt.
		err = fmt.Errorf("press ctrl+c to quit")

	case "add-output":
		err = m.addOutput(args)
	case "add-pad":
		err = m.addPad(args)
	case "add-keyboard":
		err = m.addKeyboard(args)
	case "destroy":
		err = m.withObject(args, 1, func(obj *backend.Object, _ []string) error {
			return m.be.Destroy(obj.ID())
		})
	case "frame":
		err = m.withObject(args, 1, func(obj *backend.Object, _ []string) error {
			return m.be.Emit(obj.ID(), backend.EventFrame, nil)
		})
	case "pad-button":
		err = m.withObject(args, 2, func(obj *backend.Object, rest []string) error {
			button, perr := strconv.ParseUint(rest[0], 10, 32)
			if perr != nil {
				return perr
			}
			return m.be.Emit(obj.ID(), backend.EventPadButton, backend.PadButtonEvent{
				Button: uint32(button),
				State:  backend.ButtonPressed,
			})
		})
	case "key":
		err = m.withObject(args, 2, func(obj *backend.Object, rest []string) error {
			code, perr := strconv.ParseUint(rest[0], 10, 32)
			if perr != nil {
				return perr
			}
			return m.be.Emit(obj.ID(), backend.EventKey, backend.KeyEvent{
				KeyCode: uint32(code),
				State:   backend.KeyPressed,
			})
		})
	case "run":
		err = m.runOnOutput(args)

	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		m.status = err.Error()
		m.isErr = true
		return
	}
	m.status = "ok: " + line
	m.isErr = false
}

func (m *simModel) withObject(args []string, want int, fn func(*backend.Object, []string) error) error {
	if len(args) < want {
		return fmt.Errorf("expected %d argument(s)", want)
	}
	obj, ok := m.be.Lookup(args[0])
	if !ok {
		return fmt.Errorf("no object named %q", args[0])
	}
	return fn(obj, args[1:])
}

func (m *simModel) addOutput(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: add-output <name> <width> <height>")
	}
	w, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return err
	}
	h, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil {
		return err
	}
	_, err = m.be.CreateOutput(backend.OutputState{
		Name: args[0],
		Modes: []backend.Mode{{
			Size:      wlkit.Size{Width: int32(w), Height: int32(h)},
			Refresh:   60000,
			Preferred: true,
		}},
		Scale:   1,
		Enabled: true,
	})
	return err
}

func (m *simModel) addPad(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: add-pad <name> <buttons>")
	}
	buttons, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	_, err = m.be.CreateInput(backend.InputState{
		Name:    args[0],
		Type:    backend.DeviceTabletPad,
		Buttons: buttons,
	})
	return err
}

func (m *simModel) addKeyboard(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: add-keyboard <name>")
	}
	_, err := m.be.CreateInput(backend.InputState{
		Name: args[0],
		Type: backend.DeviceKeyboard,
	})
	return err
}

// runOnOutput demonstrates the checkout discipline from the prompt: it
// borrows the named output, schedules a frame and reports its state.
func (m *simModel) runOnOutput(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: run <output-name>")
	}
	obj, ok := m.be.Lookup(args[0])
	if !ok {
		return fmt.Errorf("no object named %q", args[0])
	}
	h, ok := m.bridge.Output(obj.ID())
	if !ok {
		return fmt.Errorf("%q is not a managed output", args[0])
	}
	return h.Run(func(o *output.Output) error {
		o.ScheduleFrame()
		size := o.EffectiveResolution()
		m.status = fmt.Sprintf("%s: %dx%d, frame scheduled", o.Name(), size.Width, size.Height)
		return nil
	})
}

func (m *simModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wlkit sim"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Outputs"))
	b.WriteString("\n")
	if len(m.bridge.Outputs()) == 0 {
		b.WriteString(helpStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	m.layout.Each(func(h output.Handle, area wlkit.Area) bool {
		name, err := h.Name()
		if err != nil {
			b.WriteString("  " + deadStyle.Render(h.ID().String()+" (dead)"))
		} else {
			b.WriteString(fmt.Sprintf("  %s  %dx%d at (%d,%d)",
				nameStyle.Render(name),
				area.Size.Width, area.Size.Height,
				area.Origin.X, area.Origin.Y))
		}
		b.WriteString("\n")
		return true
	})

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Devices"))
	b.WriteString("\n")
	devices := m.bridge.Devices()
	if len(devices) == 0 {
		b.WriteString(helpStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, d := range devices {
		b.WriteString(fmt.Sprintf("  %s  %s\n", nameStyle.Render(d.Name()), d.Type()))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Lifecycle"))
	b.WriteString("\n")
	for _, e := range m.events {
		b.WriteString("  " + eventStyle.Render(e) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		if m.isErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("add-output/add-pad/add-keyboard • destroy/frame/pad-button/key/run <name> • ctrl+c quit"))
	b.WriteString("\n")

	return b.String()
}

func runInteractive(scenarioFile string) error {
	m, err := newSimModel(scenarioFile)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
