// Package inspector provides a read-only tcell/tview browser over a completed assembly: its
// symbol table, its final instruction listing, and its diagnostic list. It never drives the
// pipeline itself — it only renders an assembler.Result handed to it by main.
package inspector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/snesdev/zealgo/assembler"
	"github.com/snesdev/zealgo/parser"
)

// TUI is the inspector's text user interface.
type TUI struct {
	Result *assembler.Result
	Errors *parser.ErrorList

	App   *tview.Application
	Pages *tview.Pages

	MainLayout  *tview.Flex
	SymbolView  *tview.TextView
	ListingView *tview.TextView
	DiagView    *tview.TextView
	StatusView  *tview.TextView
}

// NewTUI builds an inspector over a completed (or partially completed) assembly. errs may be nil.
func NewTUI(res *assembler.Result, errs *parser.ErrorList) *TUI {
	t := &TUI{
		Result: res,
		Errors: errs,
		App:    tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

func (t *TUI) initializeViews() {
	t.SymbolView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.SymbolView.SetBorder(true).SetTitle(" Symbols ")

	t.ListingView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.ListingView.SetBorder(true).SetTitle(" Listing ")

	t.DiagView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.DiagView.SetBorder(true).SetTitle(" Diagnostics ")

	t.StatusView = tview.NewTextView().SetDynamicColors(true)
	t.StatusView.SetText("[yellow]q[white] quit   [yellow]ctrl-L[white] refresh")
}

func (t *TUI) buildLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.SymbolView, 0, 1, false).
		AddItem(t.DiagView, 0, 1, false)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 1, false).
		AddItem(t.ListingView, 0, 2, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, false).
		AddItem(t.StatusView, 1, 0, false)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				t.App.Stop()
				return nil
			}
		}
		return event
	})
}

// RefreshAll repaints every panel from the current Result/Errors.
func (t *TUI) RefreshAll() {
	t.updateSymbolView()
	t.updateListingView()
	t.updateDiagView()
	t.App.Draw()
}

func (t *TUI) updateSymbolView() {
	t.SymbolView.Clear()
	if t.Result == nil || t.Result.Symbols == nil {
		t.SymbolView.SetText("[yellow]No symbol table[white]")
		return
	}

	names := append([]string{}, t.Result.Symbols.Names()...)
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		addr, _ := t.Result.Symbols.Lookup(name)
		lines = append(lines, fmt.Sprintf("%-24s $%06X", name, addr))
	}
	if len(lines) == 0 {
		lines = append(lines, "[yellow](no labels)[white]")
	}
	t.SymbolView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateListingView() {
	t.ListingView.Clear()
	if t.Result == nil {
		t.ListingView.SetText("[yellow]No assembly result[white]")
		return
	}

	var lines []string
	for _, u := range t.Result.Units {
		node := t.Result.Nodes[u.Index]
		ins, ok := node.(parser.Instruction)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("$%06X  %-6s  %s", u.Address, ins.Mnemonic, describeArg(ins.Arg)))
	}
	if len(lines) == 0 {
		lines = append(lines, "[yellow](no instructions)[white]")
	}
	t.ListingView.SetText(strings.Join(lines, "\n"))
}

func describeArg(arg parser.Expr) string {
	switch e := arg.(type) {
	case parser.FinalImpliedExpr:
		return fmt.Sprintf("opcode $%02X", e.Opcode)
	case parser.FinalSingleArgExpr:
		return fmt.Sprintf("opcode $%02X operand $%X", e.Opcode, e.Operand.Truncated())
	case parser.FinalTwoArgExpr:
		return fmt.Sprintf("opcode $%02X $%02X $%02X", e.Opcode, e.First, e.Second)
	default:
		return "(unresolved)"
	}
}

func (t *TUI) updateDiagView() {
	t.DiagView.Clear()
	if t.Errors == nil || len(t.Errors.All()) == 0 {
		t.DiagView.SetText("[green]No diagnostics[white]")
		return
	}

	var lines []string
	for _, m := range t.Errors.All() {
		color := "red"
		if m.Severity == parser.SeverityWarning {
			color = "yellow"
		}
		lines = append(lines, fmt.Sprintf("[%s]%s[white]", color, m.String()))
	}
	t.DiagView.SetText(strings.Join(lines, "\n"))
}

// Run starts the inspector application, blocking until the user quits.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.Pages, true).SetFocus(t.Pages).Run()
}

// Stop stops the inspector application.
func (t *TUI) Stop() {
	t.App.Stop()
}
