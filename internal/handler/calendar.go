package handler

import (
	"fmt"

	"github.com/iliyamo/garage-repair-shop/internal/model"
)

// CalendarEntry is one block on the calendar widget.  The color pair is
// derived solely from the repair's active flag.
type CalendarEntry struct {
	Title     string `json:"title"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Color     string `json:"color"`
	TextColor string `json:"textColor,omitempty"`
	URL       string `json:"url"`
}

// RepairEntries converts repairs into calendar entries linking to their
// detail page under baseURL.  Confirmed repairs render green on white,
// proposals grey on black.
func RepairEntries(repairs []*model.Repair, baseURL string) []CalendarEntry {
	entries := make([]CalendarEntry, 0, len(repairs))
	for _, r := range repairs {
		color, text := "grey", "black"
		if r.Active {
			color, text = "green", "white"
		}
		entries = append(entries, CalendarEntry{
			Title:     r.CarName,
			Start:     r.StartDate.Format(dateLayout),
			End:       r.EndDate.Format(dateLayout),
			Color:     color,
			TextColor: text,
			URL:       fmt.Sprintf("%s/%d", baseURL, r.ID),
		})
	}
	return entries
}

// BusyEntries converts other customers' confirmed repairs into anonymous
// red blocks so a customer sees which dates are taken without seeing
// whose car occupies them.  Proposals are skipped.
func BusyEntries(repairs []*model.Repair) []CalendarEntry {
	entries := make([]CalendarEntry, 0, len(repairs))
	for _, r := range repairs {
		if !r.Active {
			continue
		}
		entries = append(entries, CalendarEntry{
			Title: "-",
			Start: r.StartDate.Format(dateLayout),
			End:   r.EndDate.Format(dateLayout),
			Color: "red",
		})
	}
	return entries
}
