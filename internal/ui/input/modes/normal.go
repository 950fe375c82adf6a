package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"maxgear/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case tea.KeyTab:
		return []types.Action{types.SwitchScreenAction{Screen: "next"}}, true
	case tea.KeyEnter:
		if ctx.OnCatalog() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
		}
		return []types.Action{
			types.SwitchScreenAction{Screen: "catalog"},
			types.ChangeModeAction{Mode: types.ModeSearch},
		}, true
	}

	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch key {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "g":
		// gg jumps to the top
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	case "1":
		return []types.Action{types.SwitchScreenAction{Screen: "home"}}, true
	case "2":
		return []types.Action{types.SwitchScreenAction{Screen: "catalog"}}, true
	case "/", "s":
		actions := []types.Action{}
		if !ctx.OnCatalog() {
			actions = append(actions, types.SwitchScreenAction{Screen: "catalog"})
		}
		return append(actions, types.ChangeModeAction{Mode: types.ModeSearch}), true
	case "r":
		if ctx.OnCatalog() && ctx.LastQuery() != "" {
			return []types.Action{types.RetryAction{}}, true
		}
		return nil, false
	case "v":
		if ctx.OnCatalog() && ctx.TotalItems() > 0 {
			return []types.Action{types.OpenResultsPagerAction{}}, true
		}
		return nil, false
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "H":
		return []types.Action{types.OpenHelpPagerAction{}}, true
	}

	return nil, false
}
