package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/metrics"
)

// RespostaErro corpo de erro HTTP do portal.
type RespostaErro struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RequirePermissao devolve um middleware que libera a rota apenas para
// sessão autenticada detendo qualquer uma das permissões dadas. Sem
// argumentos, exige apenas autenticação. Deve ser usado DEPOIS de
// SessaoMiddleware.
//
// Comportamento:
//   - Sessão ainda inicializando → espera a resolução (limitada pelo
//     contexto da requisição) em vez de redirecionar prematuramente.
//   - Não autenticado → 302 para /login em navegação HTML; 401 em chamadas
//     de API.
//   - Autenticado sem a permissão → resposta explícita de não autorizado,
//     nunca corpo vazio.
func RequirePermissao(permissoes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := ContextoDaSessao(c)
		if ctx == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(RespostaErro{Code: "SEM_SESSAO", Message: "sessão não resolvida"})
		}

		if err := ctx.AguardarInicializacao(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(RespostaErro{Code: "INICIALIZANDO", Message: "sessão ainda inicializando, tente novamente"})
		}

		if !ctx.Autenticado() {
			if preferirHTML(c) {
				return c.Redirect("/login", fiber.StatusFound)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(RespostaErro{Code: "NAO_AUTENTICADO", Message: domain.ErrNaoAutorizado.Error()})
		}

		if len(permissoes) > 0 && !ctx.TemQualquerPermissao(permissoes...) {
			metrics.PermissoesNegadas.Inc()
			return c.Status(fiber.StatusForbidden).JSON(RespostaErro{Code: "PERMISSAO_NEGADA", Message: domain.ErrPermissaoNegada.Error()})
		}

		return c.Next()
	}
}

// preferirHTML distingue navegação de navegador de chamada de API.
func preferirHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), "text/html")
}

// responderErro mapeia a taxonomia de erros do domínio para respostas HTTP
// com mensagens seguras para o usuário.
func responderErro(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNaoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(RespostaErro{Code: "NAO_AUTENTICADO", Message: domain.ErrNaoAutorizado.Error()})
	case errors.Is(err, domain.ErrPermissaoNegada):
		return c.Status(fiber.StatusForbidden).JSON(RespostaErro{Code: "PERMISSAO_NEGADA", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(RespostaErro{Code: "NAO_ENCONTRADO", Message: err.Error()})
	case errors.Is(err, domain.ErrIndisponivel):
		return c.Status(fiber.StatusBadGateway).JSON(RespostaErro{Code: "INDISPONIVEL", Message: domain.ErrIndisponivel.Error()})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(RespostaErro{Code: "ERRO", Message: err.Error()})
	}
}
