package models

type RosterPDFData struct {
	Title            string
	GeneratedAt      string      // formatted date
	Employees        []*Employee // sorted by id
	Headcount        int
	TotalSalary      int64
	TotalSalaryWords string
}
