package employee

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	BaseSalary string `json:"base_salary" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	BaseSalary string `json:"base_salary" binding:"required"`
	Active     *bool  `json:"active"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	BaseSalary string `json:"base_salary"`
	Active     bool   `json:"active"`
}
