package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// EscalasService consome os endpoints de escalas de voluntários.
// Além do CRUD, cobre as transições de confirmação e check-in.
type EscalasService struct {
	recurso
}

// NovoEscalasService constrói o serviço de escalas sobre a sessão dada.
func NovoEscalasService(s *Sessao) *EscalasService {
	return &EscalasService{recurso{s: s, base: "/escalas"}}
}

func (e *EscalasService) Listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	return e.listar(ctx, filtros)
}

func (e *EscalasService) BuscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	return e.buscarPorID(ctx, id)
}

func (e *EscalasService) Criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	return e.criar(ctx, dados)
}

func (e *EscalasService) Atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	return e.atualizar(ctx, id, dados)
}

// Confirmar registra que o voluntário aceitou a escala.
func (e *EscalasService) Confirmar(ctx context.Context, id string) (json.RawMessage, error) {
	return e.patch(ctx, id, "/confirmar")
}

// CheckIn registra a presença do voluntário no culto.
func (e *EscalasService) CheckIn(ctx context.Context, id string) (json.RawMessage, error) {
	return e.patch(ctx, id, "/check-in")
}

func (e *EscalasService) Excluir(ctx context.Context, id string) error {
	return e.excluir(ctx, id)
}
