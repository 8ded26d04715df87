// Package load считает текущую нагрузку отделений по снимку талонов.
package load

import "queuecare/internal/models"

type DepartmentLoad struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CurrentLoad int    `json:"currentLoad"`
}

// Compute возвращает по одной записи на каждое отделение в порядке departments.
// Учитываются талоны в любом статусе, кроме Completed; талоны неизвестных
// отделений не учитываются.
func Compute(tickets []models.Ticket, departments models.Departments) []DepartmentLoad {
	counts := make(map[string]int, len(departments))
	for _, t := range tickets {
		if t.Active() {
			counts[t.Department]++
		}
	}

	loads := make([]DepartmentLoad, 0, len(departments))
	for _, d := range departments {
		loads = append(loads, DepartmentLoad{Code: d.Code, Name: d.Name, CurrentLoad: counts[d.Code]})
	}
	return loads
}

// Total: суммарная нагрузка по всем отделениям.
func Total(loads []DepartmentLoad) int {
	n := 0
	for _, l := range loads {
		n += l.CurrentLoad
	}
	return n
}
