package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sirsim/internal/anim"
	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/sim"
)

const (
	canvasWidth  = 70
	canvasHeight = 16
	minFPS       = 1
	maxFPS       = 60
)

type TickMsg time.Time

// Replay plays a trajectory back one sample per tick. With repeat set it
// starts over after the last day.
type Replay struct {
	traj   *sim.Trajectory
	params models.Params
	seq    *anim.Sequence
	view   Viewport
	layers []*Canvas

	frame   int
	loops   int
	fps     int
	running bool
}

func NewReplay(traj *sim.Trajectory, params models.Params, fps int, repeat bool) Replay {
	if fps < minFPS {
		fps = minFPS
	}
	if fps > maxFPS {
		fps = maxFPS
	}

	view := Viewport{XMin: 0, XMax: 1, YMin: -0.01, YMax: 1.01}
	if traj.Len() > 0 {
		view.XMin = traj.Times[0]
		view.XMax = traj.Times[traj.Len()-1]
		if view.XMax <= view.XMin {
			view.XMax = view.XMin + 1
		}
	}

	return Replay{
		traj:   traj,
		params: params,
		seq:    anim.NewSequence(traj.Len(), repeat),
		view:   view,
		layers: []*Canvas{
			NewCanvas(canvasWidth, canvasHeight),
			NewCanvas(canvasWidth, canvasHeight),
			NewCanvas(canvasWidth, canvasHeight),
		},
		fps:     fps,
		running: true,
	}
}

func (m Replay) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return m.tick()
}

// Frame is the prefix length currently shown.
func (m Replay) Frame() int { return m.frame }

// Loops counts completed passes over the trajectory.
func (m Replay) Loops() int { return m.loops }

func (m Replay) Running() bool { return m.running }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.seq.Reset()
			m.frame = 0
			m.loops = 0
		case "+", "=":
			if m.fps < maxFPS {
				m.fps++
			}
		case "-", "_":
			if m.fps > minFPS {
				m.fps--
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			m = m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Replay) advance() Replay {
	f, ok := m.seq.Next()
	if !ok {
		m.running = false
		return m
	}
	if f == 1 && m.frame > 0 {
		m.loops++
	}
	m.frame = f
	return m
}

func (m Replay) View() string {
	var b strings.Builder

	title := fmt.Sprintf("SIR model   b=%g   k=%g   R0=%.2f", m.params.B, m.params.K, m.params.R0())
	b.WriteString(Title.Render(title))
	b.WriteString("\n\n")

	if m.frame == 0 {
		b.WriteString(Subtle.Render("waiting for first frame..."))
		b.WriteString("\n")
		return b.String()
	}

	prefix, err := m.traj.Prefix(m.frame)
	if err != nil {
		return err.Error()
	}

	for _, l := range m.layers {
		l.Clear()
	}
	m.layers[0].Plot(m.view, prefix.Times, prefix.Column(models.Susceptible))
	m.layers[1].Plot(m.view, prefix.Times, prefix.Column(models.Recovered))
	m.layers[2].Plot(m.view, prefix.Times, prefix.Column(models.Infected))

	plot := Composite(m.layers, []lipgloss.Style{SusceptibleStyle, RecoveredStyle, InfectedStyle})
	b.WriteString(Panel.Render(strings.TrimSuffix(plot, "\n")))
	b.WriteString("\n")

	x := prefix.Final()
	legend := strings.Join([]string{
		SusceptibleStyle.Render("━ susceptible"),
		RecoveredStyle.Render("• recovered"),
		InfectedStyle.Render("╍ infected"),
	}, "   ")
	b.WriteString(legend)
	b.WriteString("\n\n")

	stats := strings.Join([]string{
		Metric("day", fmt.Sprintf("%.0f", prefix.Times[m.frame-1])),
		Metric("s", fmt.Sprintf("%.4f", x[models.Susceptible])),
		Metric("r", fmt.Sprintf("%.4f", x[models.Recovered])),
		Metric("i", fmt.Sprintf("%.4f", x[models.Infected])),
	}, "  ")
	b.WriteString(stats)
	b.WriteString("\n\n")

	infected := prefix.Column(models.Infected)
	if len(infected) == 1 {
		infected = append(infected, infected[0])
	}
	b.WriteString(asciigraph.Plot(infected,
		asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("infected")))
	b.WriteString("\n\n")

	status := StatusRunning.Render("▶ playing")
	if !m.running {
		status = StatusPaused.Render("⏸ paused")
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", status,
		Metric("fps", fmt.Sprintf("%d", m.fps)),
		Metric("loop", fmt.Sprintf("%d", m.loops+1))))
	b.WriteString(KeyHint.Render("space pause · r restart · +/- speed · q quit"))
	b.WriteString("\n")

	return b.String()
}
