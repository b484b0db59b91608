package api

import (
	"context"
	"encoding/json"
)

// ConfiguracaoService consome as tabelas de apoio do backend
// (tipos de culto, funções, departamentos, cargos, formas de conhecimento).
type ConfiguracaoService struct {
	s *Sessao
}

// NovoConfiguracaoService constrói o serviço de configuração sobre a sessão dada.
func NovoConfiguracaoService(s *Sessao) *ConfiguracaoService {
	return &ConfiguracaoService{s: s}
}

func (c *ConfiguracaoService) TiposCulto(ctx context.Context) (json.RawMessage, error) {
	return c.buscar(ctx, "/config/tipos-culto")
}

func (c *ConfiguracaoService) Funcoes(ctx context.Context) (json.RawMessage, error) {
	return c.buscar(ctx, "/config/funcoes")
}

func (c *ConfiguracaoService) Departamentos(ctx context.Context) (json.RawMessage, error) {
	return c.buscar(ctx, "/config/departamentos")
}

func (c *ConfiguracaoService) CargosEclesiasticos(ctx context.Context) (json.RawMessage, error) {
	return c.buscar(ctx, "/config/cargos-eclesiasticos")
}

func (c *ConfiguracaoService) FormasConhecimento(ctx context.Context) (json.RawMessage, error) {
	return c.buscar(ctx, "/config/formas-conhecimento")
}

func (c *ConfiguracaoService) buscar(ctx context.Context, caminho string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.s.Get(ctx, caminho, &out)
	return out, err
}
