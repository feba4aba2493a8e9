package usecase

import (
	"fmt"
	"strings"

	"github.com/xavierca1/sankhya-leads/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateAddProductInput checa os campos obrigatórios. Quantidade zero conta como ausente.
func ValidateAddProductInput(input AddProductInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CodLead.String()) == "" {
		errors = append(errors, ValidationError{"CODLEAD", "is required"})
	}
	if strings.TrimSpace(input.CodProd.String()) == "" {
		errors = append(errors, ValidationError{"CODPROD", "is required"})
	}
	if strings.TrimSpace(input.DescrProd) == "" {
		errors = append(errors, ValidationError{"DESCRPROD", "is required"})
	}

	switch {
	case !entity.IsFinite(float64(input.Quantidade)):
		errors = append(errors, ValidationError{"QUANTIDADE", "must be a finite number"})
	case input.Quantidade == 0:
		errors = append(errors, ValidationError{"QUANTIDADE", "is required"})
	case input.Quantidade < 0:
		errors = append(errors, ValidationError{"QUANTIDADE", "must be positive"})
	}

	if !entity.IsFinite(float64(input.VlrUnit)) {
		errors = append(errors, ValidationError{"VLRUNIT", "must be a finite number"})
	} else if input.VlrUnit < 0 {
		errors = append(errors, ValidationError{"VLRUNIT", "must not be negative"})
	}

	return errors
}

func validationMessage(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "CODLEAD, CODPROD, DESCRPROD e QUANTIDADE são obrigatórios: " + strings.Join(parts, ", ")
}
