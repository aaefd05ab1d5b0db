// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Diego Elio Pettenò

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Flameeyes/pqrcuds0/pkg/panelbus"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event log entry
type logEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// Last observed panel state
type panelState struct {
	timestamp time.Time
	status    panelbus.PanelStatus
}

// Last observed unit report
type unitState struct {
	timestamp time.Time
	report    panelbus.UnitReport
}

// TUI model
type model struct {
	connInfo      string
	statsInterval int
	showAll       bool
	stats         *panelbus.Statistics
	eventLog      []logEntry
	maxLogEntries int
	logView       viewport.Model
	lastPanel     *panelState
	lastUnit      *unitState
	width         int
	height        int
	quitting      bool
	connClosed    bool
}

// Messages
type tickMsg time.Time
type recordMsg struct {
	record panelbus.Record
}
type discardMsg struct {
	bytes int
}
type connClosedMsg struct{}

func initialModel(connInfo string, statsInterval int, showAll bool) model {
	return model{
		connInfo:      connInfo,
		statsInterval: statsInterval,
		showAll:       showAll,
		stats:         panelbus.NewStatistics(),
		eventLog:      make([]logEntry, 0),
		maxLogEntries: 200,
		logView:       viewport.New(80, 10),
		width:         80,
		height:        24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		// Everything else scrolls the event log
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 4
		logHeight := msg.Height - 16
		if logHeight < 5 {
			logHeight = 5
		}
		m.logView.Height = logHeight

	case tickMsg:
		// Update statistics rates
		m.stats.CalculateRates()
		return m, tickCmd()

	case discardMsg:
		m.stats.RecordDiscard(msg.bytes)
		m.addLogEntry(fmt.Sprintf("Discarded %d byte(s) of truncated packet", msg.bytes), false)

	case connClosedMsg:
		m.connClosed = true
		m.addLogEntry("Connection closed", true)

	case recordMsg:
		m.stats.Update(msg.record)

		switch rec := msg.record.(type) {
		case panelbus.InvalidChecksum:
			m.addLogEntry(fmt.Sprintf("CHECKSUM ERROR: %s", rec.RawHex()), true)

		case panelbus.ValidPacket:
			m.observeFields(rec)

			if rec.HasUnknown() {
				m.addLogEntry(fmt.Sprintf("%s %s carries unknown bits % X",
					rec.Source, rec.PayloadHex(), rec.Unknown[:]), false)
			} else if m.showAll {
				m.addLogEntry(panelbus.FormatRecord(rec), false)
			}
		}
	}

	return m, nil
}

func (m *model) addLogEntry(message string, isError bool) {
	entry := logEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}

	m.logView.SetContent(m.renderLog())
	m.logView.GotoBottom()
}

// observeFields keeps the latest decoded state per source for the summary
// panes.
func (m *model) observeFields(rec panelbus.ValidPacket) {
	switch fields := rec.Fields.(type) {
	case panelbus.PanelStatus:
		m.lastPanel = &panelState{timestamp: time.Now(), status: fields}
	case panelbus.UnitReport:
		m.lastUnit = &unitState{timestamp: time.Now(), report: fields}
	case panelbus.PanelFeaturesInquiry:
		m.addLogEntry("Panel features inquiry", false)
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
)

func (m model) renderLog() string {
	if len(m.eventLog) == 0 {
		return headerStyle.Render("  (no events yet)")
	}

	var b strings.Builder
	for _, entry := range m.eventLog {
		timestamp := entry.timestamp.Format("15:04:05.000")
		if entry.isError {
			b.WriteString(fmt.Sprintf("%s %s\n",
				headerStyle.Render(timestamp),
				errorStyle.Render("✗ "+entry.message),
			))
		} else {
			b.WriteString(fmt.Sprintf("%s %s\n",
				headerStyle.Render(timestamp),
				warningStyle.Render("ℹ "+entry.message),
			))
		}
	}
	return b.String()
}

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("PQRCUDS0 - BUS STATISTICS"))
	s.WriteString("\n")
	mode := "Errors only"
	if m.showAll {
		mode = "All packets"
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Mode: %s | Press 'q' to quit",
		m.connInfo, mode)))
	s.WriteString("\n\n")

	if m.connClosed {
		s.WriteString(errorStyle.Render("✗ Connection closed"))
		s.WriteString("\n\n")
	}

	// Statistics
	m.stats.CalculateRates()
	var validPercent, errorPercent float64
	if m.stats.TotalPackets > 0 {
		validPercent = float64(m.stats.ValidPackets) * 100.0 / float64(m.stats.TotalPackets)
		errorPercent = float64(m.stats.ChecksumErrors) * 100.0 / float64(m.stats.TotalPackets)
	}

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Total:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.TotalPackets)),
		labelStyle.Render("Valid:"), valueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.ValidPackets, validPercent)),
		labelStyle.Render("Checksum Errors:"), errorStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.ChecksumErrors, errorPercent)),
	))
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Panel:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.PanelPackets)),
		labelStyle.Render("HVAC Unit:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.UnitPackets)),
		labelStyle.Render("Unknown Bits:"), warningStyle.Render(fmt.Sprintf("%d", m.stats.UnknownBits)),
	))
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Packet Rate:"), valueStyle.Render(fmt.Sprintf("%.1f pkts/s", m.stats.PacketRate)),
		labelStyle.Render("Discarded Bytes:"), func() string {
			if m.stats.DiscardedBytes > 0 {
				return warningStyle.Render(fmt.Sprintf("%d", m.stats.DiscardedBytes))
			}
			return valueStyle.Render("0")
		}(),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Latest panel state
	if m.lastPanel != nil {
		s.WriteString(labelStyle.Render("Latest Panel State:"))
		s.WriteString("\n")

		st := m.lastPanel.status
		stateContent := strings.Builder{}
		stateContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
			labelStyle.Render("Mode:"), valueStyle.Render(st.Mode.String()),
			labelStyle.Render("Fan:"), valueStyle.Render(st.FanSpeed.String()),
			labelStyle.Render("Running:"), renderBool(st.Running),
		))
		stateContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Room:"), valueStyle.Render(fmt.Sprintf("%.1f°", st.RoomTemperature)),
			labelStyle.Render("Set:"), valueStyle.Render(fmt.Sprintf("%d°", st.SetTemperature)),
		))
		stateContent.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
			labelStyle.Render("Plasma:"), renderBool(st.Plasma),
			labelStyle.Render("Swivel:"), renderBool(st.Swivel),
			labelStyle.Render("Swirl:"), renderBool(st.Swirl),
			labelStyle.Render("Resistor:"), renderBool(st.ResistorActive),
		))

		s.WriteString(boxStyle.Render(stateContent.String()))
		s.WriteString("\n\n")
	}

	// Latest unit report
	if m.lastUnit != nil {
		s.WriteString(labelStyle.Render("Latest Unit Report:"))
		s.WriteString("\n")

		reading := "no reading"
		if m.lastUnit.report.HasRoomTemperature {
			reading = fmt.Sprintf("%.1f°", m.lastUnit.report.RoomTemperature)
		}
		s.WriteString(boxStyle.Render(fmt.Sprintf("%s %s",
			labelStyle.Render("Room:"), valueStyle.Render(reading))))
		s.WriteString("\n\n")
	}

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")
	s.WriteString(boxStyle.Width(m.width - 4).Render(m.logView.View()))

	return s.String()
}

func renderBool(v bool) string {
	if v {
		return valueStyle.Render("yes")
	}
	return headerStyle.Render("no")
}
