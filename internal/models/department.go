package models

// Department: отделение из фиксированного справочника.
type Department struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

type Departments []Department

// DefaultDepartments используется, если справочник не задан файлом.
var DefaultDepartments = Departments{
	{Code: "general", Name: "General Practice"},
	{Code: "cardiology", Name: "Cardiology"},
	{Code: "orthopedics", Name: "Orthopedics"},
	{Code: "pediatrics", Name: "Pediatrics"},
}

func (d Departments) Contains(code string) bool {
	_, ok := d.Lookup(code)
	return ok
}

func (d Departments) Lookup(code string) (Department, bool) {
	for _, dept := range d {
		if dept.Code == code {
			return dept, true
		}
	}
	return Department{}, false
}
