package model

// EmployeeStatus is the global availability state of an employee.
type EmployeeStatus string

const (
	EmployeeActive  EmployeeStatus = "active"
	EmployeeHoliday EmployeeStatus = "holiday"
	EmployeeSick    EmployeeStatus = "sick"
)

// JobRole is the role an employee fills on a crew.
type JobRole string

const (
	RoleOperative JobRole = "operative"
	RoleAssistant JobRole = "assistant"
)

// Employee is a member of the workforce. Only active employees are
// eligible for new assignments.
type Employee struct {
	ID      string
	Name    string
	Status  EmployeeStatus
	JobRole JobRole
}

// Assignable reports whether the employee can take new assignments.
func (e Employee) Assignable() bool { return e.Status == EmployeeActive }
