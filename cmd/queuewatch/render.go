package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"queuecare/internal/models"
	"queuecare/internal/projection"
)

func render(w io.Writer, tickets []models.Ticket, staff *projection.Staff) {
	fmt.Fprintf(w, "\n%d талонов\n", len(tickets))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "№\tОТДЕЛЕНИЕ\tПРИОРИТЕТ\tСТАТУС\tВЫЗВАН\tПАЦИЕНТ\tОЖИДАНИЕ ДО")
	for _, t := range tickets {
		name := t.OwnerID
		if t.Profile != nil && t.Profile.FullName != "" {
			name = t.Profile.FullName
		}
		ready := ""
		if t.IsReady {
			ready = "да"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.TicketNumber, t.Department, t.Priority, t.Status, ready, name, t.EstimatedTime.Format("15:04"))
	}
	tw.Flush()

	if staff == nil {
		return
	}
	// Вызывается из обработчика изменений, нагрузка уже пересчитана.
	fmt.Fprintf(w, "Активных: %d\n", staff.ActiveCount())
	for _, l := range staff.Loads() {
		fmt.Fprintf(w, "  %-20s %d\n", l.Name, l.CurrentLoad)
	}
}
