package concept

type CreateConceptRequest struct {
	Name           string  `json:"name" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	CalcMode       string  `json:"calc_mode" binding:"required"`
	FixedAmount    string  `json:"fixed_amount"`
	PercentageRate string  `json:"percentage_rate"`
	FormulaID      *string `json:"formula_id"`
	Active         *bool   `json:"active"`
}

type UpdateConceptRequest struct {
	Name           string  `json:"name" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	CalcMode       string  `json:"calc_mode" binding:"required"`
	FixedAmount    string  `json:"fixed_amount"`
	PercentageRate string  `json:"percentage_rate"`
	FormulaID      *string `json:"formula_id"`
	Active         *bool   `json:"active"`
}

type ConceptResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	CalcMode       string  `json:"calc_mode"`
	FixedAmount    string  `json:"fixed_amount"`
	PercentageRate string  `json:"percentage_rate"`
	FormulaID      *string `json:"formula_id,omitempty"`
	Expression     *string `json:"expression,omitempty"`
	Active         bool    `json:"active"`
}
