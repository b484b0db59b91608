package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/auth"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Gerenciador *auth.Gerenciador
	NomeCookie  string
	AppName     string
}

// Router registra as rotas do portal. Toda rota passa pelo middleware de
// sessão; as rotas de conteúdo ainda passam pelo guard de permissões, que
// decide entre 401/403 para chamadas de API e redirecionamento para /login
// em navegação HTML.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	app.Use(SessaoMiddleware(deps.Gerenciador, deps.NomeCookie))

	authHandler := NovoAuthHandler(deps.Gerenciador)
	recursos := NovoRecursosHandler(deps.Gerenciador)

	// Página de login: âncora do redirecionamento do guard.
	app.Get("/login", PaginaLogin)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/esqueci-senha", authHandler.EsqueciSenha)
	authGroup.Post("/redefinir-senha", authHandler.RedefinirSenha)

	// Avaliação pública de cultos (sem sessão autenticada)
	api.Post("/avaliacoes/publica", recursos.CriarAvaliacaoPublica)

	// Rotas autenticadas sem permissão específica
	authGroup.Post("/logout", RequirePermissao(), authHandler.Logout)
	authGroup.Get("/me", RequirePermissao(), authHandler.Me)
	authGroup.Post("/alterar-senha", RequirePermissao(), authHandler.AlterarSenha)
	api.Get("/menu", RequirePermissao(), Menu)

	// Cultos
	cultos := api.Group("/cultos")
	cultos.Get("/", RequirePermissao("read_cultos", "manage_cultos"), recursos.ListarCultos)
	cultos.Get("/:id", RequirePermissao("read_cultos", "manage_cultos"), recursos.BuscarCulto)
	cultos.Post("/", RequirePermissao("create_cultos", "manage_cultos"), recursos.CriarCulto)
	cultos.Put("/:id", RequirePermissao("update_cultos", "manage_cultos"), recursos.AtualizarCulto)
	cultos.Delete("/:id", RequirePermissao("delete_cultos", "manage_cultos"), recursos.ExcluirCulto)

	// Escalas
	escalas := api.Group("/escalas")
	escalas.Get("/", RequirePermissao("read_escalas", "manage_escalas"), recursos.ListarEscalas)
	escalas.Get("/:id", RequirePermissao("read_escalas", "manage_escalas"), recursos.BuscarEscala)
	escalas.Post("/", RequirePermissao("create_escalas", "manage_escalas"), recursos.CriarEscala)
	escalas.Put("/:id", RequirePermissao("update_escalas", "manage_escalas"), recursos.AtualizarEscala)
	escalas.Patch("/:id/confirmar", RequirePermissao("update_escalas", "manage_escalas"), recursos.ConfirmarEscala)
	escalas.Patch("/:id/checkin", RequirePermissao("update_escalas", "manage_escalas"), recursos.CheckInEscala)
	escalas.Delete("/:id", RequirePermissao("delete_escalas", "manage_escalas"), recursos.ExcluirEscala)

	// Pessoas (sem exclusão: membros são desativados no backend, não removidos)
	pessoas := api.Group("/pessoas")
	pessoas.Get("/", RequirePermissao("read_pessoas", "manage_pessoas"), recursos.ListarPessoas)
	pessoas.Get("/:id", RequirePermissao("read_pessoas", "manage_pessoas"), recursos.BuscarPessoa)
	pessoas.Post("/", RequirePermissao("create_pessoas", "manage_pessoas"), recursos.CriarPessoa)
	pessoas.Put("/:id", RequirePermissao("update_pessoas", "manage_pessoas"), recursos.AtualizarPessoa)

	// Visitantes
	visitantes := api.Group("/visitantes")
	visitantes.Get("/", RequirePermissao("read_visitantes", "manage_visitantes"), recursos.ListarVisitantes)
	visitantes.Get("/:id", RequirePermissao("read_visitantes", "manage_visitantes"), recursos.BuscarVisitante)
	visitantes.Post("/", RequirePermissao("create_visitantes", "manage_visitantes"), recursos.CriarVisitante)
	visitantes.Put("/:id", RequirePermissao("update_visitantes", "manage_visitantes"), recursos.AtualizarVisitante)
	visitantes.Delete("/:id", RequirePermissao("delete_visitantes", "manage_visitantes"), recursos.ExcluirVisitante)

	// Avaliações (leitura autenticada; criação é pública, acima)
	avaliacoes := api.Group("/avaliacoes")
	avaliacoes.Get("/", RequirePermissao("read_avaliacoes", "manage_avaliacoes"), recursos.ListarAvaliacoes)
	avaliacoes.Get("/criterios", RequirePermissao("read_avaliacoes", "manage_avaliacoes"), recursos.CriteriosAvaliacao)

	// Administração: perfis, usuários e tabelas de configuração
	admin := api.Group("/admin", RequirePermissao("admin_sistema"))
	admin.Get("/perfis", recursos.ListarPerfis)
	admin.Post("/perfis", recursos.CriarPerfil)
	admin.Put("/perfis/:id", recursos.AtualizarPerfil)
	admin.Delete("/perfis/:id", recursos.ExcluirPerfil)
	admin.Get("/permissoes", recursos.ListarPermissoes)
	admin.Get("/usuarios", recursos.ListarUsuarios)
	admin.Post("/usuarios", recursos.CriarUsuario)
	admin.Put("/usuarios/:id", recursos.AtualizarUsuario)
	admin.Delete("/usuarios/:id", recursos.ExcluirUsuario)
	admin.Get("/configuracao/:tabela", recursos.Configuracao)
}
