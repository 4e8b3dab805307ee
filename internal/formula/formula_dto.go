package formula

type CreateFormulaRequest struct {
	ConceptID   *string `json:"concept_id"`
	Expression  string  `json:"expression" binding:"required"`
	Description string  `json:"description"`
}

type UpdateFormulaRequest struct {
	ConceptID   *string `json:"concept_id"`
	Expression  string  `json:"expression" binding:"required"`
	Description string  `json:"description"`
}

type FormulaResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	ConceptID   *string `json:"concept_id,omitempty"`
	Expression  string  `json:"expression"`
	Description string  `json:"description"`
}
