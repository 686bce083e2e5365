package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/tui/styles"
)

// Card geometry
const (
	// CardLines is the number of content lines inside a card
	CardLines = 5

	// Border adds 1 line top and bottom
	CardHeight = CardLines + 2

	// Border (2) plus Padding(0,1) (2)
	cardFrameWidth = 4

	// MinCardWidth keeps cards legible on very narrow terminals
	MinCardWidth = 16

	// SkeletonCount is how many placeholders render while loading
	SkeletonCount = 4
)

// RenderCard renders one image as a bordered card of exactly CardHeight lines
func RenderCard(img domain.Image, width int, selected bool) string {
	width = max(width, MinCardWidth)
	inner := width - cardFrameWidth

	credit := "Photo by " + img.User
	if img.User == "" {
		credit = "Photo #" + fmt.Sprint(img.ID)
	}

	meta := img.Type
	if res := img.Resolution(); res != "" {
		if meta != "" {
			meta += " · "
		}
		meta += res
	}

	stats := fmt.Sprintf("%s %s  %s %s  %s %s",
		styles.ViewsChar, domain.FormatCount(img.Views),
		styles.DownloadsChar, domain.FormatCount(img.Downloads),
		styles.LikesChar, domain.FormatCount(img.Likes),
	)

	tags := img.TagList()
	chips := make([]string, len(tags))
	for i, t := range tags {
		chips[i] = "#" + strings.ReplaceAll(t, " ", "")
	}

	lines := []string{
		styles.CreditStyle.Render(styles.Truncate(credit, inner)),
		styles.DimStyle.Render(styles.Truncate(meta, inner)),
		styles.SubtitleStyle.Render(styles.Truncate(stats, inner)),
		styles.TagStyle.Render(styles.Truncate(strings.Join(chips, " "), inner)),
		styles.URLStyle.Render(styles.Truncate(img.DisplayURL(), inner)),
	}

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.
		Width(width - style.GetHorizontalBorderSize()).
		Render(strings.Join(lines, "\n"))
}

// RenderSkeleton renders a placeholder the same size as a card
func RenderSkeleton(width int) string {
	width = max(width, MinCardWidth)
	inner := width - cardFrameWidth

	// Bar lengths as a share of the inner width
	shares := [CardLines]int{60, 40, 75, 90, 50}
	lines := make([]string, CardLines)
	for i, pct := range shares {
		lines[i] = styles.Repeat(styles.SkeletonChar, max(1, inner*pct/100))
	}

	return styles.SkeletonStyle.
		Width(width - styles.SkeletonStyle.GetHorizontalBorderSize()).
		Render(strings.Join(lines, "\n"))
}

// joinRow lays out blocks side by side
func joinRow(blocks []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
