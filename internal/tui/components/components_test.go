package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/corkboard/internal/config/colors"
)

func init() {
	InitStyles(*colors.Default())
}

func TestRenderColumn_ShowsCountAndCards(t *testing.T) {
	out := ansi.Strip(RenderColumn(ColumnProps{
		Title:  "Todo",
		Cards:  []CardProps{{Title: "Write docs"}, {Title: "Fix login", Selected: true}},
		Width:  30,
		Height: 20,
	}))

	for _, want := range []string{"Todo (2)", "Write docs", "Fix login"} {
		if !strings.Contains(out, want) {
			t.Errorf("column should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "more below") {
		t.Error("all cards fit, no scroll indicator expected")
	}
}

func TestRenderColumn_EmptyAndDone(t *testing.T) {
	out := ansi.Strip(RenderColumn(ColumnProps{Title: "Done", Done: true, Width: 30, Height: 10}))

	if !strings.Contains(out, "✓ Done (0)") {
		t.Errorf("done column header missing:\n%s", out)
	}
	if !strings.Contains(out, "No cards") {
		t.Errorf("empty column should say so:\n%s", out)
	}
}

func TestRenderColumn_ScrollIndicators(t *testing.T) {
	cards := make([]CardProps, 10)
	for i := range cards {
		cards[i] = CardProps{Title: "card"}
	}
	// room for two cards
	height := columnOverhead + 2*CardHeight

	out := ansi.Strip(RenderColumn(ColumnProps{Title: "Busy", Cards: cards, Width: 30, Height: height, ScrollOffset: 3}))

	if !strings.Contains(out, "more above") || !strings.Contains(out, "more below") {
		t.Errorf("expected both indicators:\n%s", out)
	}
	if got := MaxVisibleCards(height); got != 2 {
		t.Errorf("MaxVisibleCards = %d, want 2", got)
	}
}

func TestRenderCard_TruncatesLongTitles(t *testing.T) {
	out := ansi.Strip(RenderCard(CardProps{Title: strings.Repeat("x", 50)}, 20))
	if !strings.Contains(out, "…") {
		t.Errorf("long title should be truncated:\n%s", out)
	}
}

func TestRenderChecklistItem(t *testing.T) {
	tests := []struct {
		name string
		item ChecklistItemProps
		want string
	}{
		{"plain", ChecklistItemProps{Text: "Outline"}, "  [ ] Outline"},
		{"done", ChecklistItemProps{Text: "Draft", Done: true}, "  [x] Draft"},
		{"selected", ChecklistItemProps{Text: "Review", Selected: true}, "> [ ] Review"},
		{"dragging", ChecklistItemProps{Text: "Review", Selected: true, Dragging: true}, "⇅ [ ] Review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi.Strip(RenderChecklistItem(tt.item, 40)); got != tt.want {
				t.Errorf("RenderChecklistItem() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderModal(t *testing.T) {
	loading := ansi.Strip(RenderModal(ModalProps{Loading: true, Width: 50}))
	if !strings.Contains(loading, "Loading card...") {
		t.Errorf("loading modal:\n%s", loading)
	}

	out := ansi.Strip(RenderModal(ModalProps{
		Title:       "Write docs",
		Description: "Cover the install steps.",
		Items:       []ChecklistItemProps{{Text: "Outline"}, {Text: "Draft"}},
		Width:       60,
		Height:      30,
	}))
	for _, want := range []string{"Write docs", "install", "Checklist", "Outline", "Draft"} {
		if !strings.Contains(out, want) {
			t.Errorf("modal should contain %q:\n%s", want, out)
		}
	}
}

func TestRenderModal_DescriptionYieldsToChecklist(t *testing.T) {
	long := strings.Repeat("paragraph\n\n", 40)
	out := ansi.Strip(RenderModal(ModalProps{
		Title:       "Busy card",
		Description: long,
		Items:       []ChecklistItemProps{{Text: "Keep me visible"}},
		Width:       60,
		Height:      16,
	}))
	if !strings.Contains(out, "Keep me visible") {
		t.Errorf("checklist should survive a long description:\n%s", out)
	}
}

func TestRenderDescription_Empty(t *testing.T) {
	if got := ansi.Strip(RenderDescription(DescriptionProps{Description: "  ", Width: 40})); got != "No description" {
		t.Errorf("RenderDescription() = %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := ansi.Strip(RenderStatusBar(StatusBarProps{
		Width:    100,
		Mode:     "DRAG",
		Message:  "Card move failed: Server error (500)",
		IsError:  true,
		Sent:     4,
		Failed:   1,
		InFlight: 2,
	}))

	for _, want := range []string{"DRAG", "Server error (500)", "sent 4", "failed 1", "syncing 2", "press ? for help"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar should contain %q: %q", want, out)
		}
	}
}

func TestRenderStatusBar_QuietCounters(t *testing.T) {
	out := ansi.Strip(RenderStatusBar(StatusBarProps{Width: 80, Mode: "BOARD"}))
	if strings.Contains(out, "failed") || strings.Contains(out, "syncing") {
		t.Errorf("zero counters should be hidden: %q", out)
	}
}
