// Package api é o único ponto de contato do portal com o backend REST de
// gerenciamento de cultos. O Client é o transporte compartilhado; cada sessão
// do portal o vincula às suas credenciais via Sessao, que injeta o bearer
// token nas requisições e trata o sinal global de 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

// corpoMaximo limita a leitura de respostas do backend.
const corpoMaximo = 1 << 20

// Config parâmetros do transporte compartilhado.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client transporte HTTP compartilhado por todos os serviços do portal.
// O timeout é único e limitado; depois dele a requisição falha como
// erro de transporte.
type Client struct {
	http    *http.Client
	baseURL string
	log     *logger.Logger
}

// New constrói o transporte compartilhado.
func New(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log,
	}
}

// FonteToken fornece o token bearer da sessão corrente, se houver.
// É consultada a cada requisição (interceptor de request).
type FonteToken interface {
	Token() (string, bool)
}

// Sessao vincula o transporte compartilhado às credenciais de uma sessão.
// naoAutorizado é disparado exatamente uma vez por resposta 401, qualquer
// que seja o endpoint que a detectou: um 401 é sinal global de credencial
// inválida.
type Sessao struct {
	c             *Client
	fonte         FonteToken
	naoAutorizado func()
}

// Sessao cria a visão do transporte vinculada a uma fonte de token e a um
// gancho de 401. Ambos podem ser nil (requisições anônimas).
func (c *Client) Sessao(fonte FonteToken, naoAutorizado func()) *Sessao {
	return &Sessao{c: c, fonte: fonte, naoAutorizado: naoAutorizado}
}

// Get, Post, Put, Patch e Delete executam a requisição e decodificam a
// resposta 2xx em out (ignorada se out for nil).
func (s *Sessao) Get(ctx context.Context, caminho string, out any) error {
	return s.do(ctx, http.MethodGet, caminho, nil, out)
}

func (s *Sessao) Post(ctx context.Context, caminho string, corpo, out any) error {
	return s.do(ctx, http.MethodPost, caminho, corpo, out)
}

func (s *Sessao) Put(ctx context.Context, caminho string, corpo, out any) error {
	return s.do(ctx, http.MethodPut, caminho, corpo, out)
}

func (s *Sessao) Patch(ctx context.Context, caminho string, corpo, out any) error {
	return s.do(ctx, http.MethodPatch, caminho, corpo, out)
}

func (s *Sessao) Delete(ctx context.Context, caminho string, out any) error {
	return s.do(ctx, http.MethodDelete, caminho, nil, out)
}

func (s *Sessao) do(ctx context.Context, metodo, caminho string, corpo, out any) error {
	var leitor io.Reader
	if corpo != nil {
		data, err := json.Marshal(corpo)
		if err != nil {
			return fmt.Errorf("serializar corpo da requisição: %w", err)
		}
		leitor = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, s.c.baseURL+caminho, leitor)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.fonte != nil {
		if token, ok := s.fonte.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.c.http.Do(req)
	if err != nil {
		s.c.log.Debug().Err(err).Str("metodo", metodo).Str("caminho", caminho).Msg("falha de transporte")
		return fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, corpoMaximo))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Sinal global de credencial inválida; o gancho limpa a sessão e
		// encaminha o usuário ao login. Uma vez por resposta, nunca por retry.
		if s.naoAutorizado != nil {
			s.naoAutorizado()
		}
		return &Erro{Status: resp.StatusCode, Mensagem: normalizarMensagem(data)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Erro{Status: resp.StatusCode, Mensagem: normalizarMensagem(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: corpo inesperado de %s %s", domain.ErrIndisponivel, metodo, caminho)
	}
	return nil
}

// Erro é um erro HTTP do backend com a mensagem já normalizada para
// exibição. Unwrap o classifica na taxonomia do domínio, permitindo
// errors.Is nos chamadores.
type Erro struct {
	Status   int
	Mensagem string
}

func (e *Erro) Error() string {
	return e.Mensagem
}

func (e *Erro) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrNaoAutorizado
	case e.Status == http.StatusForbidden:
		return domain.ErrPermissaoNegada
	case e.Status == http.StatusNotFound:
		return domain.ErrNaoEncontrado
	case e.Status >= 500:
		return domain.ErrIndisponivel
	}
	return nil
}

// normalizarMensagem reduz qualquer corpo de erro do backend a uma única
// mensagem legível. Nunca expõe stack traces nem detalhes internos.
func normalizarMensagem(corpo []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(corpo, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return domain.ErrIndisponivel.Error()
}
