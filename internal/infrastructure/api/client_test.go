package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

// fonteFixa é uma FonteToken de valor fixo.
type fonteFixa string

func (f fonteFixa) Token() (string, bool) {
	return string(f), f != ""
}

func novoCliente(t *testing.T, backend http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return api.New(api.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Interceptor de requisição: injeção do bearer
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: com fonte de token, toda requisição sai com Authorization.
func TestSessao_InjetaBearer(t *testing.T) {
	var recebido string
	c := novoCliente(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	s := c.Sessao(fonteFixa("jwt-abc"), nil)
	require.NoError(t, s.Get(context.Background(), "/qualquer", nil))

	assert.Equal(t, "Bearer jwt-abc", recebido)
}

// Caso 2: sem token, a requisição sai anônima.
func TestSessao_SemToken(t *testing.T) {
	var recebido string
	c := novoCliente(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	s := c.Sessao(nil, nil)
	require.NoError(t, s.Get(context.Background(), "/qualquer", nil))

	assert.Empty(t, recebido, "sem fonte de token não há header Authorization")
}

// ──────────────────────────────────────────────────────────────────────────────
// Interceptor de resposta: 401 global e normalização de erros
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: 401 dispara o gancho exatamente uma vez e classifica como
// ErrNaoAutorizado.
func TestSessao_GanchoDe401(t *testing.T) {
	c := novoCliente(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expirado"}`))
	}))

	var disparos atomic.Int32
	s := c.Sessao(fonteFixa("jwt-velho"), func() { disparos.Add(1) })

	err := s.Get(context.Background(), "/cultos", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNaoAutorizado)
	assert.Equal(t, int32(1), disparos.Load(), "o gancho dispara uma vez por resposta 401")

	var apiErr *api.Erro
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "token expirado", apiErr.Mensagem, "a mensagem do backend é preservada")
}

// Caso 4: respostas de sucesso nunca disparam o gancho.
func TestSessao_SucessoNaoDisparaGancho(t *testing.T) {
	c := novoCliente(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))

	var disparos atomic.Int32
	s := c.Sessao(fonteFixa("jwt"), func() { disparos.Add(1) })

	require.NoError(t, s.Get(context.Background(), "/cultos", nil))
	assert.Zero(t, disparos.Load())
}

// Caso 5: classificação da taxonomia por status.
func TestErro_Classificacao(t *testing.T) {
	casos := []struct {
		status   int
		esperado error
	}{
		{http.StatusForbidden, domain.ErrPermissaoNegada},
		{http.StatusNotFound, domain.ErrNaoEncontrado},
		{http.StatusInternalServerError, domain.ErrIndisponivel},
		{http.StatusBadGateway, domain.ErrIndisponivel},
	}
	for _, caso := range casos {
		status := caso.status
		c := novoCliente(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"falhou"}`))
		}))

		err := c.Sessao(nil, nil).Get(context.Background(), "/x", nil)
		assert.ErrorIs(t, err, caso.esperado, "status %d", status)
	}
}

// Caso 6: corpo de erro sem formato conhecido vira mensagem genérica,
// nunca o corpo cru.
func TestErro_MensagemNormalizada(t *testing.T) {
	c := novoCliente(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>stack trace interna</html>`))
	}))

	err := c.Sessao(nil, nil).Get(context.Background(), "/x", nil)
	require.Error(t, err)

	var apiErr *api.Erro
	require.ErrorAs(t, err, &apiErr)
	assert.NotContains(t, apiErr.Mensagem, "stack", "detalhes internos não vazam para o usuário")
}

// Caso 7: falha de transporte é ErrIndisponivel, distinta de rejeição.
func TestSessao_FalhaDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // backend fora do ar

	c := api.New(api.Config{BaseURL: srv.URL, Timeout: time.Second}, logger.Nop())
	err := c.Sessao(nil, nil).Get(context.Background(), "/x", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndisponivel)
	assert.False(t, errors.Is(err, domain.ErrNaoAutorizado), "indisponível não é rejeição de credencial")
}
