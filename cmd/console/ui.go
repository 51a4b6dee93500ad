package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwebster45206/life-engine/internal/handlers"
	"github.com/jwebster45206/life-engine/pkg/engine"
	"github.com/jwebster45206/life-engine/pkg/state"
	"github.com/jwebster45206/life-engine/pkg/world"
)

// UI color constants
const (
	ColorPrimary   = "117" // Light blue
	ColorSecondary = "246" // Light gray
	ColorAccent    = "212" // Pink
	ColorWarning   = "228" // Yellow
	ColorDanger    = "203" // Red
	ColorMoney     = "120" // Green
	ColorMuted     = "241" // Dark gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent))

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMoney)).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorMuted)).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(ColorAccent)).
			Padding(1, 3)
)

// rupiah renders money with Indonesian digit grouping, e.g. Rp30.000.
var rupiah = message.NewPrinter(language.Indonesian)

type uiMode int

const (
	modeZones uiMode = iota
	modeActions
	modeInventory
	modeTravel
	modeQuit
)

// Custom message types
type stateMsg struct {
	state *state.GameState
	zone  *engine.ZoneStatus
}

type actionResultMsg struct {
	result *engine.ActionResult
	state  *state.GameState
}

type itemResultMsg struct {
	resp *handlers.ItemResponse
	used bool
}

type noticesMsg []string

type errMsg struct {
	err error
}

type pollMsg time.Time

type clearStatusMsg struct{}

const pollInterval = 3 * time.Second

// ConsoleUI is the interactive terminal client. It plays a single session
// against the API: picking zones, running actions, traveling, and managing
// the inventory, with the live state rendered in a side panel.
type ConsoleUI struct {
	client  *http.Client
	baseURL string
	id      uuid.UUID

	game  *state.GameState
	zone  *engine.ZoneStatus
	world *world.World

	mode        uiMode
	zoneIdx     int  // selected zone within the current location
	discardNext bool // next inventory number discards instead of using
	notices     []string
	status      string
	errText     string
	loading     bool
	ready       bool
	width       int
	height      int
	viewport    viewport.Model
}

// NewConsoleUI creates the UI bound to an existing session.
func NewConsoleUI(client *http.Client, baseURL string, gs *state.GameState, w *world.World) *ConsoleUI {
	return &ConsoleUI{
		client:  client,
		baseURL: baseURL,
		id:      gs.ID,
		game:    gs,
		world:   w,
		mode:    modeZones,
		notices: []string{},
	}
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return tea.Batch(ui.refreshCmd(), ui.noticesCmd(), pollCmd())
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (ui *ConsoleUI) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		sr, err := getSession(ui.client, ui.baseURL, ui.id)
		if err != nil {
			return errMsg{err}
		}
		return stateMsg{state: sr.State, zone: sr.Zone}
	}
}

func (ui *ConsoleUI) noticesCmd() tea.Cmd {
	return func() tea.Msg {
		notices, err := getNotices(ui.client, ui.baseURL, ui.id)
		if err != nil {
			return errMsg{err}
		}
		return noticesMsg(notices)
	}
}

func (ui *ConsoleUI) actionCmd(zoneID string, index int) tea.Cmd {
	return func() tea.Msg {
		ar, err := executeAction(ui.client, ui.baseURL, ui.id, zoneID, index)
		if err != nil {
			return errMsg{err}
		}
		return actionResultMsg{result: ar.Result, state: ar.State}
	}
}

func (ui *ConsoleUI) finishCmd() tea.Cmd {
	return func() tea.Msg {
		sr, err := finishActivity(ui.client, ui.baseURL, ui.id)
		if err != nil {
			return errMsg{err}
		}
		return stateMsg{state: sr.State, zone: sr.Zone}
	}
}

func (ui *ConsoleUI) travelCmd(dest state.Location) tea.Cmd {
	return func() tea.Msg {
		sr, err := travel(ui.client, ui.baseURL, ui.id, dest)
		if err != nil {
			return errMsg{err}
		}
		return stateMsg{state: sr.State, zone: sr.Zone}
	}
}

func (ui *ConsoleUI) useItemCmd(index int) tea.Cmd {
	return func() tea.Msg {
		ir, err := useItem(ui.client, ui.baseURL, ui.id, index)
		if err != nil {
			return errMsg{err}
		}
		return itemResultMsg{resp: ir, used: true}
	}
}

func (ui *ConsoleUI) discardItemCmd(index int) tea.Cmd {
	return func() tea.Msg {
		ir, err := discardItem(ui.client, ui.baseURL, ui.id, index)
		if err != nil {
			return errMsg{err}
		}
		return itemResultMsg{resp: ir, used: false}
	}
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		mainWidth := ui.mainWidth()
		mainHeight := msg.Height - 4
		if mainHeight < 3 {
			mainHeight = 3
		}
		if !ui.ready {
			ui.viewport = viewport.New(mainWidth, mainHeight)
			ui.ready = true
		} else {
			ui.viewport.Width = mainWidth
			ui.viewport.Height = mainHeight
		}
		ui.viewport.SetContent(ui.mainContent())
		return ui, nil

	case stateMsg:
		ui.game = msg.state
		ui.zone = msg.zone
		ui.loading = false
		ui.errText = ""
		ui.refreshViewport()
		return ui, nil

	case actionResultMsg:
		ui.game = msg.state
		ui.loading = false
		ui.errText = ""
		if msg.result != nil && msg.result.Activity != nil {
			ui.status = msg.result.Activity.Message
		} else if msg.result != nil && len(msg.result.ShownImages) > 0 {
			ui.status = "Melihat: " + strings.Join(msg.result.ShownImages, ", ")
		} else {
			ui.status = "Selesai."
		}
		ui.mode = modeZones
		ui.refreshViewport()
		return ui, tea.Batch(ui.refreshCmd(), ui.noticesCmd(), clearStatusCmd())

	case itemResultMsg:
		ui.game = msg.resp.State
		ui.loading = false
		ui.errText = ""
		switch {
		case !msg.resp.Done:
			ui.status = "Barang tidak bisa dipakai."
		case msg.used && len(msg.resp.ShownImages) > 0:
			ui.status = "Melihat: " + strings.Join(msg.resp.ShownImages, ", ")
		case msg.used:
			ui.status = "Barang dipakai."
		default:
			ui.status = "Barang dibuang."
		}
		ui.refreshViewport()
		return ui, clearStatusCmd()

	case noticesMsg:
		if len(msg) > 0 {
			ui.notices = append(ui.notices, msg...)
			if len(ui.notices) > 20 {
				ui.notices = ui.notices[len(ui.notices)-20:]
			}
			ui.refreshViewport()
		}
		return ui, nil

	case pollMsg:
		return ui, tea.Batch(ui.refreshCmd(), ui.noticesCmd(), pollCmd())

	case clearStatusMsg:
		ui.status = ""
		ui.refreshViewport()
		return ui, nil

	case errMsg:
		ui.loading = false
		ui.errText = msg.err.Error()
		ui.refreshViewport()
		return ui, nil

	case tea.KeyMsg:
		return ui.handleKey(msg)
	}

	var cmd tea.Cmd
	ui.viewport, cmd = ui.viewport.Update(msg)
	return ui, cmd
}

func (ui *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if ui.mode == modeQuit {
		switch msg.String() {
		case "y", "Y", "enter":
			return ui, tea.Quit
		default:
			ui.mode = modeZones
			ui.refreshViewport()
			return ui, nil
		}
	}

	switch msg.String() {
	case "ctrl+c":
		return ui, tea.Quit
	case "q", "esc":
		if ui.mode != modeZones {
			ui.mode = modeZones
			ui.refreshViewport()
			return ui, nil
		}
		ui.mode = modeQuit
		ui.refreshViewport()
		return ui, nil
	case "i":
		ui.mode = modeInventory
		ui.discardNext = false
		ui.refreshViewport()
		return ui, nil
	case "d":
		if ui.mode == modeInventory {
			ui.discardNext = !ui.discardNext
			ui.refreshViewport()
		}
		return ui, nil
	case "t":
		ui.mode = modeTravel
		ui.refreshViewport()
		return ui, nil
	case "f":
		ui.loading = true
		return ui, ui.finishCmd()
	case "r":
		ui.loading = true
		return ui, tea.Batch(ui.refreshCmd(), ui.noticesCmd())
	case "c":
		if err := clipboard.WriteAll(ui.id.String()); err != nil {
			ui.errText = "clipboard: " + err.Error()
		} else {
			ui.status = "ID sesi disalin: " + ui.id.String()
		}
		ui.refreshViewport()
		return ui, clearStatusCmd()
	}

	if idx, ok := numberKey(msg.String()); ok {
		return ui.handleNumber(idx)
	}

	var cmd tea.Cmd
	ui.viewport, cmd = ui.viewport.Update(msg)
	return ui, cmd
}

// numberKey maps "1".."9" to a zero-based index.
func numberKey(s string) (int, bool) {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1'), true
	}
	return 0, false
}

func (ui *ConsoleUI) handleNumber(idx int) (tea.Model, tea.Cmd) {
	switch ui.mode {
	case modeZones:
		zones := ui.currentZones()
		if idx >= len(zones) {
			return ui, nil
		}
		ui.zoneIdx = idx
		ui.mode = modeActions
		ui.refreshViewport()
		return ui, nil

	case modeActions:
		zones := ui.currentZones()
		if ui.zoneIdx >= len(zones) {
			ui.mode = modeZones
			return ui, nil
		}
		zone := zones[ui.zoneIdx]
		if idx >= len(zone.Actions) {
			return ui, nil
		}
		ui.loading = true
		return ui, ui.actionCmd(zone.ID, idx)

	case modeInventory:
		if ui.game == nil || idx >= len(ui.game.Inventory) {
			return ui, nil
		}
		ui.loading = true
		if ui.discardNext {
			ui.discardNext = false
			return ui, ui.discardItemCmd(idx)
		}
		return ui, ui.useItemCmd(idx)

	case modeTravel:
		dests := ui.destinations()
		if idx >= len(dests) {
			return ui, nil
		}
		ui.loading = true
		ui.mode = modeZones
		return ui, ui.travelCmd(dests[idx])
	}
	return ui, nil
}

func (ui *ConsoleUI) currentZones() []world.Zone {
	if ui.game == nil || ui.world == nil {
		return nil
	}
	def, ok := ui.world.Locations[ui.game.Location]
	if !ok {
		return nil
	}
	return def.Zones
}

// destinations lists travel targets other than the current location, in a
// stable order.
func (ui *ConsoleUI) destinations() []state.Location {
	if ui.game == nil || ui.world == nil {
		return nil
	}
	dests := make([]state.Location, 0, len(ui.world.Routes))
	for loc := range ui.world.Routes {
		if loc == ui.game.Location {
			continue
		}
		dests = append(dests, loc)
	}
	sort.Slice(dests, func(i, j int) bool { return dests[i] < dests[j] })
	return dests
}

func (ui *ConsoleUI) mainWidth() int {
	w := ui.width - sidePanelWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

const sidePanelWidth = 32

func (ui *ConsoleUI) refreshViewport() {
	if ui.ready {
		ui.viewport.SetContent(ui.mainContent())
	}
}

func (ui *ConsoleUI) mainContent() string {
	var b strings.Builder

	switch ui.mode {
	case modeZones:
		b.WriteString(titleStyle.Render(ui.locationTitle()) + "\n\n")
		if ui.zone != nil && ui.zone.Activity != nil {
			act := ui.zone.Activity
			b.WriteString(warnStyle.Render(act.Message) + "\n")
			b.WriteString(labelStyle.Render(fmt.Sprintf("Sisa waktu: %ds", act.RemainingMs/1000)) + "\n")
			b.WriteString(helpStyle.Render("Tekan f untuk mempercepat.") + "\n\n")
		}
		zones := ui.currentZones()
		if len(zones) == 0 {
			b.WriteString(labelStyle.Render("Tidak ada tempat di sini.") + "\n")
		}
		for i, z := range zones {
			b.WriteString(fmt.Sprintf("%s %s\n", accentStyle.Render(fmt.Sprintf("[%d]", i+1)), z.ID))
		}

	case modeActions:
		zones := ui.currentZones()
		if ui.zoneIdx < len(zones) {
			zone := zones[ui.zoneIdx]
			b.WriteString(titleStyle.Render(zone.LocationLabel) + "\n\n")
			for i, a := range zone.Actions {
				line := fmt.Sprintf("%s %s", accentStyle.Render(fmt.Sprintf("[%d]", i+1)), a.Label)
				if a.Cost != 0 {
					line += labelStyle.Render(rupiah.Sprintf("  (Rp%d)", a.Cost))
				}
				if a.Hours > 0 {
					line += labelStyle.Render(fmt.Sprintf("  %d jam", a.Hours))
				}
				b.WriteString(line + "\n")
			}
			b.WriteString("\n" + helpStyle.Render("esc: kembali"))
		}

	case modeInventory:
		b.WriteString(titleStyle.Render("Inventaris") + "\n\n")
		if ui.game == nil || len(ui.game.Inventory) == 0 {
			b.WriteString(labelStyle.Render("Kosong.") + "\n")
		} else {
			for i, item := range ui.game.Inventory {
				b.WriteString(fmt.Sprintf("%s %s\n", accentStyle.Render(fmt.Sprintf("[%d]", i+1)), item.Name))
				if item.Description != "" {
					b.WriteString("    " + labelStyle.Render(item.Description) + "\n")
				}
			}
			hint := "angka: pakai barang  d: mode buang  esc: kembali"
			if ui.discardNext {
				hint = "angka: BUANG barang  d: batal  esc: kembali"
			}
			b.WriteString("\n" + helpStyle.Render(hint))
		}

	case modeTravel:
		b.WriteString(titleStyle.Render("Pergi ke...") + "\n\n")
		for i, dest := range ui.destinations() {
			route := ui.world.Routes[dest]
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				accentStyle.Render(fmt.Sprintf("[%d]", i+1)),
				string(dest),
				labelStyle.Render(rupiah.Sprintf("(Rp%d, %d jam)", route.Cost, route.Hours))))
		}
		b.WriteString("\n" + helpStyle.Render("esc: kembali"))

	case modeQuit:
		b.WriteString(modalStyle.Render("Keluar dari permainan?\n\ny: ya    n: tidak"))
	}

	if len(ui.notices) > 0 && ui.mode != modeQuit {
		b.WriteString("\n\n" + titleStyle.Render("Kabar") + "\n")
		start := 0
		if len(ui.notices) > 5 {
			start = len(ui.notices) - 5
		}
		for _, n := range ui.notices[start:] {
			b.WriteString(wordwrap.String("• "+n, ui.mainWidth()-2) + "\n")
		}
	}

	return b.String()
}

func (ui *ConsoleUI) locationTitle() string {
	if ui.game == nil {
		return ""
	}
	title := string(ui.game.Location)
	if def, ok := ui.world.Locations[ui.game.Location]; ok {
		title = def.Label
	}
	if ui.game.LocationLabel != "" {
		title += "  " + labelStyle.Render(ui.game.LocationLabel)
	}
	return title
}

// statBar renders a 10-cell bar for a stat in [0,100].
func statBar(value int) string {
	filled := value / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	if value <= 25 {
		return errorStyle.Render(bar)
	}
	if value <= 50 {
		return warnStyle.Render(bar)
	}
	return bar
}

func (ui *ConsoleUI) sidePanel() string {
	if ui.game == nil {
		return ""
	}
	gs := ui.game
	var b strings.Builder

	b.WriteString(titleStyle.Render(gs.Name) + "\n")
	b.WriteString(labelStyle.Render("Sprite: "+gs.Sprite) + "\n\n")

	b.WriteString(fmt.Sprintf("%-10s %s %3d\n", "Lapar", statBar(gs.Stats.Hunger), gs.Stats.Hunger))
	b.WriteString(fmt.Sprintf("%-10s %s %3d\n", "Energi", statBar(gs.Stats.Energy), gs.Stats.Energy))
	b.WriteString(fmt.Sprintf("%-10s %s %3d\n", "Senang", statBar(gs.Stats.Happiness), gs.Stats.Happiness))
	b.WriteString(fmt.Sprintf("%-10s %s %3d\n\n", "Bersih", statBar(gs.Stats.Hygiene), gs.Stats.Hygiene))

	b.WriteString(moneyStyle.Render(rupiah.Sprintf("Rp%d", gs.Money)) + "\n")
	b.WriteString(fmt.Sprintf("Hari %d, %02d:%02d", gs.Clock.Day, gs.Clock.Hour, gs.Clock.Minute))
	if gs.Clock.IsNight() {
		b.WriteString(labelStyle.Render("  (malam)"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Barang: %d/%d", len(gs.Inventory), state.MaxItems)))
	if gs.InventoryFull {
		b.WriteString("\n" + errorStyle.Render("Inventaris penuh!"))
	}
	return b.String()
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Memuat..."
	}

	main := panelStyle.Width(ui.mainWidth()).Render(ui.viewport.View())
	side := panelStyle.Width(sidePanelWidth).Render(ui.sidePanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side)

	status := ""
	switch {
	case ui.errText != "":
		status = errorStyle.Render(ui.errText)
	case ui.loading:
		status = labelStyle.Render("...")
	case ui.status != "":
		status = warnStyle.Render(ui.status)
	}

	help := helpStyle.Render("angka: pilih  i: inventaris  t: pergi  f: selesaikan aktivitas  c: salin ID  r: segarkan  q: keluar")

	return body + "\n" + status + "\n" + help
}
