package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/auth"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/metrics"
)

// AuthHandler atende login, logout e consulta da sessão corrente.
type AuthHandler struct {
	g *auth.Gerenciador
}

// NovoAuthHandler constrói o handler de autenticação.
func NovoAuthHandler(g *auth.Gerenciador) *AuthHandler {
	return &AuthHandler{g: g}
}

type pedidoLogin struct {
	Email string `json:"email" form:"email"`
	Senha string `json:"senha" form:"senha"`
}

type respostaSessao struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Usuario *entity.Usuario `json:"usuario,omitempty"`
}

// Login autentica a sessão corrente. Falha de credencial volta como 200 com
// success:false e mensagem inline — a tela de login permanece editável.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in pedidoLogin
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(RespostaErro{Code: "CORPO_INVALIDO", Message: "corpo inválido"})
	}
	if in.Email == "" || in.Senha == "" {
		return c.Status(fiber.StatusBadRequest).JSON(RespostaErro{Code: "VALIDACAO", Message: "email e senha são obrigatórios"})
	}

	ctx := ContextoDaSessao(c)
	if err := ctx.AguardarInicializacao(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(RespostaErro{Code: "INICIALIZANDO", Message: "sessão ainda inicializando"})
	}

	res := ctx.Login(c.UserContext(), in.Email, in.Senha)
	if !res.Sucesso {
		metrics.LoginsFalha.Inc()
		return c.JSON(respostaSessao{Success: false, Error: res.Erro})
	}
	metrics.LoginsSucesso.Inc()
	return c.JSON(respostaSessao{Success: true, Usuario: ctx.Usuario()})
}

// Logout encerra a sessão corrente. Sempre responde sucesso: a limpeza
// local é incondicional e a notificação ao backend é melhor esforço.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ContextoDaSessao(c).Logout()
	return c.JSON(respostaSessao{Success: true})
}

// Me devolve o usuário da sessão corrente.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := ContextoDaSessao(c)
	if err := ctx.AguardarInicializacao(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(RespostaErro{Code: "INICIALIZANDO", Message: "sessão ainda inicializando"})
	}
	if !ctx.Autenticado() {
		return c.Status(fiber.StatusUnauthorized).JSON(RespostaErro{Code: "NAO_AUTENTICADO", Message: "não autenticado"})
	}
	return c.JSON(respostaSessao{Success: true, Usuario: ctx.Usuario()})
}

type pedidoAlterarSenha struct {
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

// AlterarSenha troca a senha do usuário autenticado (rota protegida).
func (h *AuthHandler) AlterarSenha(c *fiber.Ctx) error {
	var in pedidoAlterarSenha
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(RespostaErro{Code: "CORPO_INVALIDO", Message: "corpo inválido"})
	}
	if err := h.authService(c).AlterarSenha(c.UserContext(), in.SenhaAtual, in.NovaSenha); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(respostaSessao{Success: true})
}

// EsqueciSenha solicita o e-mail de redefinição (rota pública).
func (h *AuthHandler) EsqueciSenha(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(RespostaErro{Code: "VALIDACAO", Message: "email é obrigatório"})
	}
	if err := h.authService(c).EsqueciSenha(c.UserContext(), in.Email); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(respostaSessao{Success: true})
}

// RedefinirSenha aplica nova senha com o token de redefinição (rota pública).
func (h *AuthHandler) RedefinirSenha(c *fiber.Ctx) error {
	var in struct {
		Token     string `json:"token"`
		NovaSenha string `json:"novaSenha"`
	}
	if err := c.BodyParser(&in); err != nil || in.Token == "" || in.NovaSenha == "" {
		return c.Status(fiber.StatusBadRequest).JSON(RespostaErro{Code: "VALIDACAO", Message: "token e novaSenha são obrigatórios"})
	}
	if err := h.authService(c).RedefinirSenha(c.UserContext(), in.Token, in.NovaSenha); err != nil {
		return responderErro(c, err)
	}
	return c.JSON(respostaSessao{Success: true})
}

func (h *AuthHandler) authService(c *fiber.Ctx) *api.AuthService {
	return h.g.AuthService(SIDDaSessao(c))
}
