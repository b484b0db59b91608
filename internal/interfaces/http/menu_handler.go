package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/menu"
)

// ItemMenu é a projeção de uma entrada de navegação na resposta da API.
type ItemMenu struct {
	Titulo string `json:"titulo"`
	Rota   string `json:"rota"`
	Icone  string `json:"icone"`
}

// Menu devolve as entradas de navegação visíveis para a sessão corrente,
// na ordem original. Rota protegida: exige sessão autenticada.
func Menu(c *fiber.Ctx) error {
	ctx := ContextoDaSessao(c)
	visiveis := menu.Filtrar(menu.Padrao(), ctx.Usuario(), ctx.Avaliador())

	itens := make([]ItemMenu, 0, len(visiveis))
	for _, e := range visiveis {
		itens = append(itens, ItemMenu{Titulo: e.Titulo, Rota: e.Rota, Icone: e.Icone})
	}
	return c.JSON(itens)
}
