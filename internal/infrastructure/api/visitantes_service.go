package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// VisitantesService consome os endpoints de recepção de visitantes.
type VisitantesService struct {
	recurso
}

// NovoVisitantesService constrói o serviço de visitantes sobre a sessão dada.
func NovoVisitantesService(s *Sessao) *VisitantesService {
	return &VisitantesService{recurso{s: s, base: "/visitantes"}}
}

func (v *VisitantesService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return v.listar(ctx, filtros)
}

func (v *VisitantesService) BuscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	return v.buscarPorID(ctx, id)
}

func (v *VisitantesService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return v.criar(ctx, dados)
}

func (v *VisitantesService) Atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	return v.atualizar(ctx, id, dados)
}

func (v *VisitantesService) Excluir(ctx context.Context, id string) error {
	return v.excluir(ctx, id)
}
