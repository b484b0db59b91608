package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// UsuariosService consome os endpoints de contas de acesso.
type UsuariosService struct {
	recurso
}

// NovoUsuariosService constrói o serviço de usuários sobre a sessão dada.
func NovoUsuariosService(s *Sessao) *UsuariosService {
	return &UsuariosService{recurso{s: s, base: "/usuarios"}}
}

func (u *UsuariosService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return u.listar(ctx, filtros)
}

func (u *UsuariosService) BuscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	return u.buscarPorID(ctx, id)
}

func (u *UsuariosService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return u.criar(ctx, dados)
}

func (u *UsuariosService) Atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	return u.atualizar(ctx, id, dados)
}

func (u *UsuariosService) Excluir(ctx context.Context, id string) error {
	return u.excluir(ctx, id)
}

// PerfisService consome os endpoints de perfis de acesso e suas permissões.
type PerfisService struct {
	recurso
}

// NovoPerfisService constrói o serviço de perfis sobre a sessão dada.
func NovoPerfisService(s *Sessao) *PerfisService {
	return &PerfisService{recurso{s: s, base: "/perfis"}}
}

func (p *PerfisService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return p.listar(ctx, filtros)
}

func (p *PerfisService) BuscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	return p.buscarPorID(ctx, id)
}

func (p *PerfisService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return p.criar(ctx, dados)
}

func (p *PerfisService) Atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	return p.atualizar(ctx, id, dados)
}

func (p *PerfisService) Excluir(ctx context.Context, id string) error {
	return p.excluir(ctx, id)
}

// Permissoes devolve o catálogo de permissões disponíveis para montagem de perfis.
func (p *PerfisService) Permissoes(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := p.s.Get(ctx, "/permissoes", &out)
	return out, err
}
