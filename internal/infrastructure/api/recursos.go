package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// recurso concentra o CRUD padrão dos serviços de recurso. O portal não
// remodela o contrato do backend: os corpos trafegam como JSON bruto e a
// camada HTTP os repassa ao navegador.
type recurso struct {
	s    *Sessao
	base string
}

func (r recurso) caminho(sufixo string) string {
	return r.base + sufixo
}

func (r recurso) listar(ctx context.Context, filtros url.Values) (json.RawMessage, error) {
	caminho := r.base
	if len(filtros) > 0 {
		caminho += "?" + filtros.Encode()
	}
	var out json.RawMessage
	err := r.s.Get(ctx, caminho, &out)
	return out, err
}

func (r recurso) buscarPorID(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.s.Get(ctx, r.caminho("/"+url.PathEscape(id)), &out)
	return out, err
}

func (r recurso) criar(ctx context.Context, dados json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.s.Post(ctx, r.base, dados, &out)
	return out, err
}

func (r recurso) atualizar(ctx context.Context, id string, dados json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.s.Put(ctx, r.caminho("/"+url.PathEscape(id)), dados, &out)
	return out, err
}

func (r recurso) excluir(ctx context.Context, id string) error {
	return r.s.Delete(ctx, r.caminho("/"+url.PathEscape(id)), nil)
}

func (r recurso) patch(ctx context.Context, id, acao string) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.s.Patch(ctx, r.caminho("/"+url.PathEscape(id)+acao), nil, &out)
	return out, err
}
