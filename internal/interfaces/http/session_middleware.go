package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/auth"
)

// Locals keys da sessão do portal no Fiber.
const (
	LocalSID      = "sessao_sid"
	LocalContexto = "sessao_contexto"
)

// SessaoMiddleware resolve o cookie de sessão do portal para um contexto de
// autenticação, criando sessão (e cookie) quando não há. Dispara a
// inicialização do contexto; quem precisa do resultado espera por ele no
// guard.
func SessaoMiddleware(g *auth.Gerenciador, nomeCookie string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(nomeCookie)
		var ctx *auth.Contexto
		if sid == "" {
			sid, ctx = g.NovaSessao()
			c.Cookie(&fiber.Cookie{
				Name:     nomeCookie,
				Value:    sid,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Path:     "/",
			})
		} else {
			ctx = g.Obter(sid)
		}

		ctx.InicializarUmaVez()

		c.Locals(LocalSID, sid)
		c.Locals(LocalContexto, ctx)
		return c.Next()
	}
}

// ContextoDaSessao devolve o contexto de autenticação da requisição
// (depois de SessaoMiddleware), ou nil.
func ContextoDaSessao(c *fiber.Ctx) *auth.Contexto {
	ctx, _ := c.Locals(LocalContexto).(*auth.Contexto)
	return ctx
}

// SIDDaSessao devolve o identificador da sessão da requisição.
func SIDDaSessao(c *fiber.Ctx) string {
	sid, _ := c.Locals(LocalSID).(string)
	return sid
}
