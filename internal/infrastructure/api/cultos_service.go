package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// CultosService consome os endpoints de cultos do backend.
type CultosService struct {
	recurso
}

// NovoCultosService constrói o serviço de cultos sobre a sessão dada.
func NovoCultosService(s *Sessao) *CultosService {
	return &CultosService{recurso{s: s, base: "/cultos"}}
}

func (c *CultosService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return c.listar(ctx, filtros)
}

func (c *CultosService) BuscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	return c.buscarPorID(ctx, id)
}

func (c *CultosService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return c.criar(ctx, dados)
}

func (c *CultosService) Atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	return c.atualizar(ctx, id, dados)
}

func (c *CultosService) Excluir(ctx context.Context, id string) error {
	return c.excluir(ctx, id)
}
