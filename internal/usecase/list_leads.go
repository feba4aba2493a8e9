package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/xavierca1/sankhya-leads/internal/entity"
)

type ListLeadsUseCase struct {
	Leads     LeadLister
	AdminRole string
}

func NewListLeadsUseCase(leads LeadLister, adminRole string) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads, AdminRole: adminRole}
}

// Execute devolve todos os leads para administradores e só os do próprio usuário para os demais.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, user entity.SessionUser) ([]entity.Lead, error) {
	isAdmin := user.IsAdmin(uc.AdminRole)
	ownerID := strings.TrimSpace(user.ID)
	if !isAdmin && ownerID == "" {
		return nil, &DomainError{Code: CodeInvalidSession, Message: "Sessão inválida"}
	}

	log.Printf("👤 Usuário autenticado: %s (ID: %s, Admin: %t)", user.Name, ownerID, isAdmin)

	leads, err := uc.Leads.List(ctx, ownerID, isAdmin)
	if err != nil {
		return nil, &TechnicalError{Code: CodeSankhya, Message: err.Error(), Err: err}
	}

	visible := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if isAdmin || lead.CodUsuario == ownerID {
			visible = append(visible, lead)
		}
	}

	log.Printf("✅ %d leads retornados", len(visible))
	return visible, nil
}
