package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pokehub/pkg/models"
)

const barWidth = 30

func bar(percent float64) string {
	n := int(percent*barWidth + 0.5)
	if n > barWidth {
		n = barWidth
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("#", n) + strings.Repeat(".", barWidth-n)
}

func renderCard(w io.Writer, c models.Card) {
	fmt.Fprintf(w, "#%d %s\n", c.ID, strings.ToUpper(c.Name))
	fmt.Fprintf(w, "types:  %s\n", strings.Join(c.Types, ", "))
	fmt.Fprintf(w, "height: %.1f m\n", c.HeightMetres)
	fmt.Fprintf(w, "weight: %.1f kg\n", c.WeightKilograms)
	if c.SpriteURL != "" {
		fmt.Fprintf(w, "sprite: %s\n", c.SpriteURL)
	}
	if len(c.Stats) > 0 {
		fmt.Fprintln(w)
		renderStatItems(w, c.Stats)
	}
}

func renderStatItems(w io.Writer, items []models.StatItem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", it.DisplayName, it.Value, bar(it.Percent))
	}
	_ = tw.Flush()
}

func renderStats(w io.Writer, s models.StatSummary) {
	fmt.Fprintf(w, "%s base stats\n\n", strings.ToUpper(s.Name))
	renderStatItems(w, s.Items)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "total:   %d\n", s.Total)
	fmt.Fprintf(w, "average: %.1f\n", s.Average)
	fmt.Fprintf(w, "highest: %s (%d)\n", s.Highest.DisplayName, s.Highest.Value)
	fmt.Fprintf(w, "lowest:  %s (%d)\n", s.Lowest.DisplayName, s.Lowest.Value)
}

func renderMoves(w io.Writer, m movesResponse) {
	fmt.Fprintf(w, "%s moves (%d of %d)\n\n", strings.ToUpper(m.Pokemon), m.ShownCount, m.TotalCount)
	for _, name := range m.Shown {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if m.Remaining > 0 {
		fmt.Fprintf(w, "\n... and %d more\n", m.Remaining)
	}
}

func renderTypes(w io.Writer, t models.TypeSummary) {
	fmt.Fprintf(w, "%s is %s\n", strings.ToUpper(t.Name), t.Composition)
	for _, ts := range t.Types {
		role := "secondary"
		if ts.IsPrimary {
			role = "primary"
		}
		fmt.Fprintf(w, "  %-10s %s\n", ts.Name, role)
	}
}

func renderRaw(w io.Writer, v models.RawView) {
	fmt.Fprintf(w, "#%d %s: %d properties, %.2f KB\n\n", v.ID, v.Name, v.PropertyCount, v.SizeKB)
	fmt.Fprintln(w, v.JSON)
}

func renderCompare(w io.Writer, r compareResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\t%s\n", strings.ToUpper(r.Left.Name), strings.ToUpper(r.Right.Name))
	for i := range r.Left.Stats {
		if i >= len(r.Right.Stats) {
			break
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Left.Stats[i].DisplayName, r.Left.Stats[i].Value, r.Right.Stats[i].Value)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\n", r.LeftTotal, r.RightTotal)
	_ = tw.Flush()

	if r.Winner == models.WinnerTie {
		fmt.Fprintln(w, "\nIt's a tie!")
		return
	}
	fmt.Fprintf(w, "\nWinner: %s\n", r.Winner)
}

func renderTeam(w io.Writer, r teamResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTYPE\tTOTAL")
	for _, m := range r.Members {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", m.ID, m.Name, m.PrimaryType, m.TotalStat)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\ntypes (%d): %s\n", r.TypeCount, strings.Join(r.DistinctTypes, ", "))
	fmt.Fprintf(w, "average total stat: %d\n", r.AverageTotalStat)
}
