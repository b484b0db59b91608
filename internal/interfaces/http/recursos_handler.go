package http

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/auth"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/br"
)

// RecursosHandler repassa as telas CRUD do portal para o backend, com as
// credenciais da sessão corrente. Os corpos trafegam como JSON bruto: o
// portal adiciona autenticação e autorização, não remodela o contrato.
type RecursosHandler struct {
	g *auth.Gerenciador
}

// NovoRecursosHandler constrói o handler de recursos.
func NovoRecursosHandler(g *auth.Gerenciador) *RecursosHandler {
	return &RecursosHandler{g: g}
}

func (h *RecursosHandler) sessaoAPI(c *fiber.Ctx) *api.Sessao {
	return h.g.SessaoAPI(SIDDaSessao(c))
}

// filtrosDaQuery copia a query string, normalizando o termo de busca para
// comparação insensível a caixa e acentos.
func filtrosDaQuery(c *fiber.Ctx) url.Values {
	filtros := url.Values{}
	for chave, valores := range c.Queries() {
		filtros.Set(chave, valores)
	}
	if busca := filtros.Get("busca"); busca != "" {
		filtros.Set("busca", br.NormalizarBusca(busca))
	}
	return filtros
}

func enviarJSON(c *fiber.Ctx, dados json.RawMessage, err error) error {
	if err != nil {
		return responderErro(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(dados)
}

// ── Cultos ────────────────────────────────────────────────────────────────────

func (h *RecursosHandler) ListarCultos(c *fiber.Ctx) error {
	dados, err := api.NovoCultosService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) BuscarCulto(c *fiber.Ctx) error {
	dados, err := api.NovoCultosService(h.sessaoAPI(c)).BuscarPorID(c.UserContext(), c.Params("id"))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriarCulto(c *fiber.Ctx) error {
	dados, err := api.NovoCultosService(h.sessaoAPI(c)).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) AtualizarCulto(c *fiber.Ctx) error {
	dados, err := api.NovoCultosService(h.sessaoAPI(c)).Atualizar(c.UserContext(), c.Params("id"), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ExcluirCulto(c *fiber.Ctx) error {
	if err := api.NovoCultosService(h.sessaoAPI(c)).Excluir(c.UserContext(), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Escalas ───────────────────────────────────────────────────────────────────

func (h *RecursosHandler) ListarEscalas(c *fiber.Ctx) error {
	dados, err := api.NovoEscalasService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) BuscarEscala(c *fiber.Ctx) error {
	dados, err := api.NovoEscalasService(h.sessaoAPI(c)).BuscarPorID(c.UserContext(), c.Params("id"))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriarEscala(c *fiber.Ctx) error {
	dados, err := api.NovoEscalasService(h.sessaoAPI(c)).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) AtualizarEscala(c *fiber.Ctx) error {
	dados, err := api.NovoEscalasService(h.sessaoAPI(c)).Atualizar(c.UserContext(), c.Params("id"), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ConfirmarEscala(c *fiber.Ctx) error {
	dados, err := api.NovoEscalasService(h.sessaoAPI(c)).Confirmar(c.UserContext(), c.Params("id"))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CheckInEscala(c *fiber.Ctx) error {
	dados, err := api.NovoEscalasService(h.sessaoAPI(c)).CheckIn(c.UserContext(), c.Params("id"))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ExcluirEscala(c *fiber.Ctx) error {
	if err := api.NovoEscalasService(h.sessaoAPI(c)).Excluir(c.UserContext(), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Pessoas ───────────────────────────────────────────────────────────────────

func (h *RecursosHandler) ListarPessoas(c *fiber.Ctx) error {
	dados, err := api.NovoPessoasService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) BuscarPessoa(c *fiber.Ctx) error {
	dados, err := api.NovoPessoasService(h.sessaoAPI(c)).BuscarPorID(c.UserContext(), c.Params("id"))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriarPessoa(c *fiber.Ctx) error {
	dados, err := api.NovoPessoasService(h.sessaoAPI(c)).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) AtualizarPessoa(c *fiber.Ctx) error {
	dados, err := api.NovoPessoasService(h.sessaoAPI(c)).Atualizar(c.UserContext(), c.Params("id"), c.Body())
	return enviarJSON(c, dados, err)
}

// ── Visitantes ────────────────────────────────────────────────────────────────

func (h *RecursosHandler) ListarVisitantes(c *fiber.Ctx) error {
	dados, err := api.NovoVisitantesService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) BuscarVisitante(c *fiber.Ctx) error {
	dados, err := api.NovoVisitantesService(h.sessaoAPI(c)).BuscarPorID(c.UserContext(), c.Params("id"))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriarVisitante(c *fiber.Ctx) error {
	dados, err := api.NovoVisitantesService(h.sessaoAPI(c)).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) AtualizarVisitante(c *fiber.Ctx) error {
	dados, err := api.NovoVisitantesService(h.sessaoAPI(c)).Atualizar(c.UserContext(), c.Params("id"), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ExcluirVisitante(c *fiber.Ctx) error {
	if err := api.NovoVisitantesService(h.sessaoAPI(c)).Excluir(c.UserContext(), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Avaliações ────────────────────────────────────────────────────────────────

func (h *RecursosHandler) ListarAvaliacoes(c *fiber.Ctx) error {
	dados, err := api.NovoAvaliacoesService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriteriosAvaliacao(c *fiber.Ctx) error {
	dados, err := api.NovoAvaliacoesService(h.sessaoAPI(c)).Criterios(c.UserContext())
	return enviarJSON(c, dados, err)
}

// CriarAvaliacaoPublica atende o formulário público de avaliação: sem
// sessão, sem credenciais.
func (h *RecursosHandler) CriarAvaliacaoPublica(c *fiber.Ctx) error {
	dados, err := api.NovoAvaliacoesService(h.g.SessaoAnonima()).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

// ── Perfis e usuários ─────────────────────────────────────────────────────────

func (h *RecursosHandler) ListarPerfis(c *fiber.Ctx) error {
	dados, err := api.NovoPerfisService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriarPerfil(c *fiber.Ctx) error {
	dados, err := api.NovoPerfisService(h.sessaoAPI(c)).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) AtualizarPerfil(c *fiber.Ctx) error {
	dados, err := api.NovoPerfisService(h.sessaoAPI(c)).Atualizar(c.UserContext(), c.Params("id"), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ExcluirPerfil(c *fiber.Ctx) error {
	if err := api.NovoPerfisService(h.sessaoAPI(c)).Excluir(c.UserContext(), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecursosHandler) ListarPermissoes(c *fiber.Ctx) error {
	dados, err := api.NovoPerfisService(h.sessaoAPI(c)).Permissoes(c.UserContext())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ListarUsuarios(c *fiber.Ctx) error {
	dados, err := api.NovoUsuariosService(h.sessaoAPI(c)).Listar(c.UserContext(), filtrosDaQuery(c))
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) CriarUsuario(c *fiber.Ctx) error {
	dados, err := api.NovoUsuariosService(h.sessaoAPI(c)).Criar(c.UserContext(), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) AtualizarUsuario(c *fiber.Ctx) error {
	dados, err := api.NovoUsuariosService(h.sessaoAPI(c)).Atualizar(c.UserContext(), c.Params("id"), c.Body())
	return enviarJSON(c, dados, err)
}

func (h *RecursosHandler) ExcluirUsuario(c *fiber.Ctx) error {
	if err := api.NovoUsuariosService(h.sessaoAPI(c)).Excluir(c.UserContext(), c.Params("id")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Configuração ──────────────────────────────────────────────────────────────

func (h *RecursosHandler) Configuracao(c *fiber.Ctx) error {
	svc := api.NovoConfiguracaoService(h.sessaoAPI(c))
	ctx := c.UserContext()

	var (
		dados json.RawMessage
		err   error
	)
	switch c.Params("tabela") {
	case "tipos-culto":
		dados, err = svc.TiposCulto(ctx)
	case "funcoes":
		dados, err = svc.Funcoes(ctx)
	case "departamentos":
		dados, err = svc.Departamentos(ctx)
	case "cargos-eclesiasticos":
		dados, err = svc.CargosEclesiasticos(ctx)
	case "formas-conhecimento":
		dados, err = svc.FormasConhecimento(ctx)
	default:
		return c.Status(fiber.StatusNotFound).JSON(RespostaErro{Code: "NAO_ENCONTRADO", Message: "tabela de configuração desconhecida"})
	}
	return enviarJSON(c, dados, err)
}
