package httpadapter

import "unicode/utf8"

// fieldError is one request-validation finding, reported in the 422 detail.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type autoCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (req autoCategoryRequest) validate() []fieldError {
	var errs []fieldError
	if n := utf8.RuneCountInString(req.Title); n < 3 || n > 200 {
		errs = append(errs, fieldError{Field: "title", Message: "must be between 3 and 200 characters"})
	}
	if n := utf8.RuneCountInString(req.Description); n < 10 || n > 4000 {
		errs = append(errs, fieldError{Field: "description", Message: "must be between 10 and 4000 characters"})
	}
	return errs
}

type b2bProposalRequest struct {
	Budget   float64 `json:"budget"`
	Industry string  `json:"industry"`
}

func (req b2bProposalRequest) validate() []fieldError {
	var errs []fieldError
	if req.Budget <= 0 {
		errs = append(errs, fieldError{Field: "budget", Message: "must be greater than 0"})
	}
	if n := utf8.RuneCountInString(req.Industry); n < 2 || n > 150 {
		errs = append(errs, fieldError{Field: "industry", Message: "must be between 2 and 150 characters"})
	}
	return errs
}
