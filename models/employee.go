package models

// Employee is one row of employee_details. ID is assigned by the store and never changes.
type Employee struct {
	ID         int64  `json:"id" db:"id" bson:"_id" dynamodbav:"id"`
	Name       string `json:"name" db:"name" bson:"name" dynamodbav:"name" validate:"required,max=255"`
	Email      string `json:"email" db:"email" bson:"email" dynamodbav:"email" validate:"required,email,max=255"`
	Age        int    `json:"age" db:"age" bson:"age" dynamodbav:"age" validate:"gte=0,lte=150"`
	Department string `json:"department" db:"department" bson:"department" dynamodbav:"department" validate:"max=255"`
	Salary     int64  `json:"salary" db:"salary" bson:"salary" dynamodbav:"salary" validate:"gte=0"`
}

// EmployeeUpdate carries the fields supplied in an update request; nil means unchanged.
type EmployeeUpdate struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Age        *int    `json:"age"`
	Department *string `json:"department"`
	Salary     *int64  `json:"salary"`
}

// ApplyTo merges the supplied fields onto e. The ID is never touched.
func (u EmployeeUpdate) ApplyTo(e *Employee) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	if u.Age != nil {
		e.Age = *u.Age
	}
	if u.Department != nil {
		e.Department = *u.Department
	}
	if u.Salary != nil {
		e.Salary = *u.Salary
	}
}
