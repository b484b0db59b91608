package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// PessoasService consome os endpoints de pessoas (membros e congregados).
// Não há exclusão: registro de pessoa é histórico da igreja.
type PessoasService struct {
	recurso
}

// NovoPessoasService constrói o serviço de pessoas sobre a sessão dada.
func NovoPessoasService(s *Sessao) *PessoasService {
	return &PessoasService{recurso{s: s, base: "/pessoas"}}
}

func (p *PessoasService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return p.listar(ctx, filtros)
}

func (p *PessoasService) BuscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	return p.buscarPorID(ctx, id)
}

func (p *PessoasService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return p.criar(ctx, dados)
}

func (p *PessoasService) Atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	return p.atualizar(ctx, id, dados)
}
