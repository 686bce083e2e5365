package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PixabayGreen = lipgloss.Color("#2EC66D")
	SlateDark    = lipgloss.Color("#1F2937")
	SlateLight   = lipgloss.Color("#374151")
	DimGray      = lipgloss.Color("#6B7280")
	LightGray    = lipgloss.Color("#9CA3AF")
	White        = lipgloss.Color("#F9FAFB")
	Red          = lipgloss.Color("#EF4444")
	Amber        = lipgloss.Color("#F59E0B")
	Blue         = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PixabayGreen)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PixabayGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PixabayGreen).
				Padding(0, 1)

	SkeletonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateLight).
			Foreground(SlateLight).
			Padding(0, 1)

	CreditStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	TagStyle = lipgloss.NewStyle().
			Foreground(Blue)

	URLStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Underline(true)
)

// Stat glyphs shown on cards
const (
	ViewsChar     = "◉"
	DownloadsChar = "↓"
	LikesChar     = "♥"
	SkeletonChar  = "░"
)

// Search bar styles
var (
	SearchBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PixabayGreen).
			Padding(0, 1)

	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(PixabayGreen).
				Bold(true)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PixabayGreen)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PixabayGreen)

	SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(PixabayGreen)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PixabayGreen).
				Bold(true)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + spaces(width-len(r))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// Repeat returns ch repeated n times
func Repeat(ch string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, n*len(ch))
	for i := 0; i < n; i++ {
		out = append(out, ch...)
	}
	return string(out)
}

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PixabayGreen).
			Padding(1, 2).
			Background(SlateDark)
)
