package assignment

type CreateAssignmentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	ConceptID  string `json:"concept_id" binding:"required,uuid"`
	Position   int    `json:"position"`
}

type AssignmentResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	EmployeeID  string  `json:"employee_id"`
	ConceptID   string  `json:"concept_id"`
	ConceptName *string `json:"concept_name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Position    int     `json:"position"`
	Active      bool    `json:"active"`
}
