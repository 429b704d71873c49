package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

const refreshInterval = 2 * time.Second

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	stationView table.Model
	queueView   table.Model
	orderView   table.Model
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	snapshot    *Snapshot
	currentView string
	status      string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

func (i item) FilterValue() string { return i.title }
func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }

func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Dashboard", desc: "Funds, reputation and performance"},
		item{title: "Kitchen Stations", desc: "Equipment status and load"},
		item{title: "Customer Queue", desc: "Guests waiting and seated"},
		item{title: "Orders", desc: "Orders in flight"},
		item{title: "Assistant", desc: "Send a free-text command to the kitchen"},
		item{title: "Start Game", desc: "Start the simulation loop"},
		item{title: "Stop Game", desc: "Stop the simulation loop"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Bistro CLI"

	stationView := table.New(
		table.WithColumns([]table.Column{
			{Title: "Station", Width: 16},
			{Title: "Type", Width: 10},
			{Title: "Status", Width: 8},
			{Title: "Load", Width: 8},
			{Title: "Reliability", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	queueView := table.New(
		table.WithColumns([]table.Column{
			{Title: "Customer", Width: 18},
			{Title: "Status", Width: 10},
			{Title: "Patience", Width: 10},
			{Title: "Table", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	orderView := table.New(
		table.WithColumns([]table.Column{
			{Title: "Order", Width: 14},
			{Title: "Dish", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Steps", Width: 7},
			{Title: "Quality", Width: 8},
			{Title: "Rush", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ti := textinput.New()
	ti.Placeholder = "e.g. seat the first customer, or: start_cooking {\"orderId\": \"...\"}"
	ti.CharLimit = 256
	ti.Width = 60

	return Model{
		mainMenu:    mainMenu,
		stationView: stationView,
		queueView:   queueView,
		orderView:   orderView,
		textInput:   ti,
		spinner:     s,
		client:      NewApiClient(),
		currentView: "main",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen, fetchSnapshot(m.client), scheduleRefresh())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView != "assistant" {
				return m, tea.Quit
			}
		case "enter":
			if m.currentView == "main" {
				if selected, ok := m.mainMenu.SelectedItem().(item); ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Dashboard":
						m.currentView = "dashboard"
					case "Kitchen Stations":
						m.currentView = "stations"
					case "Customer Queue":
						m.currentView = "queue"
					case "Orders":
						m.currentView = "orders"
					case "Assistant":
						m.currentView = "assistant"
						m.textInput.SetValue("")
						m.textInput.Focus()
					case "Start Game":
						return m, callEngine(func() (*Result, error) { return m.client.StartGame() })
					case "Stop Game":
						return m, callEngine(func() (*Result, error) { return m.client.StopGame() })
					}
					return m, fetchSnapshot(m.client)
				}
			} else if m.currentView == "assistant" {
				text := m.textInput.Value()
				if text != "" {
					m.textInput.SetValue("")
					return m, callEngine(func() (*Result, error) { return m.client.SendCommand(text) })
				}
			} else if m.currentView == "queue" {
				if row := m.queueView.SelectedRow(); row != nil && row[1] == "waiting" {
					id := row[0]
					return m, callEngine(func() (*Result, error) { return m.client.SeatCustomer(id, "") })
				}
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.status = ""
			}
		}
	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.stationView.SetRows(stationRows(msg.snapshot))
		m.queueView.SetRows(queueRows(msg.snapshot))
		m.orderView.SetRows(orderRows(msg.snapshot))
		m.error = ""
		return m, nil
	case refreshMsg:
		return m, tea.Batch(fetchSnapshot(m.client), scheduleRefresh())
	case resultMsg:
		if msg.result.Success {
			m.status = msg.result.Message
			m.error = ""
		} else {
			m.error = msg.result.Message
			m.status = ""
		}
		return m, fetchSnapshot(m.client)
	case errorMsg:
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "stations":
		m.stationView, cmd = m.stationView.Update(msg)
	case "queue":
		m.queueView, cmd = m.queueView.Update(msg)
	case "orders":
		m.orderView, cmd = m.orderView.Update(msg)
	case "assistant":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	footer := ""
	if m.error != "" {
		footer = "\n" + errorStyle.Render(m.error)
	} else if m.status != "" {
		footer = "\n" + successStyle.Render(m.status)
	}

	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View() + footer)
	case "dashboard":
		return docStyle.Render(titleStyle.Render("Dashboard") + "\n\n" + dashboardView(m.snapshot) + footer)
	case "stations":
		return docStyle.Render(titleStyle.Render("Kitchen Stations") + "\n\n" + m.stationView.View() + footer)
	case "queue":
		help := "\nPress 'enter' to seat the selected waiting customer, 'esc' to go back\n"
		return docStyle.Render(titleStyle.Render("Customers") + "\n\n" + m.queueView.View() + help + footer)
	case "orders":
		return docStyle.Render(titleStyle.Render("Orders") + "\n\n" + m.orderView.View() + footer)
	case "assistant":
		help := "\nPress 'enter' to send, 'esc' to go back\n"
		return docStyle.Render(titleStyle.Render("Assistant") + "\n\n" + m.textInput.View() + "\n" + help + footer)
	default:
		return "Loading..."
	}
}

// dashboardView summarizes funds, reputation and session metrics.
func dashboardView(s *Snapshot) string {
	if s == nil {
		return "Waiting for engine..."
	}

	view := infoStyle.Render(fmt.Sprintf("Phase: %s  Difficulty: %.1f  Elapsed: %.0fs",
		s.Game.Phase, s.Game.Difficulty, s.Game.TimeElapsed)) + "\n\n"
	view += fmt.Sprintf("Funds:          $%.2f\n", s.Restaurant.Funds)
	view += fmt.Sprintf("Reputation:     %.1f\n", s.Restaurant.Reputation)
	view += fmt.Sprintf("Queue:          %d waiting\n", s.Restaurant.QueueLength)
	view += fmt.Sprintf("Seated:         %d / %d\n", len(s.Restaurant.ActiveCustomers), s.Restaurant.CustomerCapacity)
	view += fmt.Sprintf("Active orders:  %d\n\n", len(s.Restaurant.ActiveOrders))
	view += fmt.Sprintf("Orders completed: %.0f\n", s.Game.Metrics.OrdersCompleted)
	view += fmt.Sprintf("Average quality:  %.1f\n", s.Game.Metrics.AverageQuality)
	view += fmt.Sprintf("Customers served: %.0f\n", s.Game.Metrics.CustomersServed)
	view += fmt.Sprintf("Customers lost:   %.0f\n", s.Game.Metrics.CustomersLost)
	view += "\nPress 'esc' to go back"
	return view
}

func stationRows(s *Snapshot) []table.Row {
	rows := []table.Row{}
	for _, st := range s.Kitchen.Stations {
		rows = append(rows, table.Row{
			st.Name,
			st.Type,
			st.Status,
			fmt.Sprintf("%d/%d", st.InUse, st.Capacity),
			fmt.Sprintf("%.0f%%", st.Reliability),
		})
	}
	return rows
}

func queueRows(s *Snapshot) []table.Row {
	rows := []table.Row{}
	for _, c := range s.Restaurant.Queue {
		rows = append(rows, table.Row{c.ID, c.Status, fmt.Sprintf("%.0f", c.Patience), ""})
	}
	for _, c := range s.Restaurant.ActiveCustomers {
		rows = append(rows, table.Row{c.ID, c.Status, fmt.Sprintf("%.0f", c.Patience), c.TableID})
	}
	return rows
}

func orderRows(s *Snapshot) []table.Row {
	rows := []table.Row{}
	for _, o := range s.Restaurant.ActiveOrders {
		rush := ""
		if o.IsPriority {
			rush = "yes"
		}
		rows = append(rows, table.Row{
			o.ID,
			o.DishID,
			o.Status,
			fmt.Sprintf("%d", o.StepsCompleted),
			fmt.Sprintf("%.0f", o.QualityScore),
			rush,
		})
	}
	return rows
}

// Custom message types for the tea.Model
type snapshotMsg struct {
	snapshot *Snapshot
}

type refreshMsg struct{}

type resultMsg struct {
	result *Result
}

type errorMsg struct {
	err string
}

// fetchSnapshot retrieves the engine state from the API
func fetchSnapshot(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := client.GetSnapshot()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching state: %v", err)}
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

// scheduleRefresh re-polls the engine on a fixed interval
func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// callEngine runs one API call and reports its result
func callEngine(call func() (*Result, error)) tea.Cmd {
	return func() tea.Msg {
		result, err := call()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error calling engine: %v", err)}
		}
		return resultMsg{result: result}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
