package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// AvaliacoesService consome os endpoints de pesquisas de avaliação dos
// cultos. A criação também atende a rota pública de avaliação (sem sessão).
type AvaliacoesService struct {
	recurso
}

// NovoAvaliacoesService constrói o serviço de avaliações sobre a sessão dada.
func NovoAvaliacoesService(s *Sessao) *AvaliacoesService {
	return &AvaliacoesService{recurso{s: s, base: "/avaliacoes"}}
}

func (a *AvaliacoesService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return a.listar(ctx, filtros)
}

func (a *AvaliacoesService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return a.criar(ctx, dados)
}

// Criterios devolve os critérios de avaliação configurados no backend.
func (a *AvaliacoesService) Criterios(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := a.s.Get(ctx, a.caminho("/criterios"), &out)
	return out, err
}
