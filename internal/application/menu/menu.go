// Package menu calcula o conjunto de entradas de navegação visíveis para a
// sessão corrente. Função pura de (entradas, usuário): nenhum estado próprio.
package menu

import (
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/permissao"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
)

// Entrada é um item de navegação do portal. Permissoes vazio significa
// visível para qualquer sessão autenticada.
type Entrada struct {
	Titulo     string   `json:"titulo"`
	Rota       string   `json:"rota"`
	Icone      string   `json:"icone"`
	Permissoes []string `json:"-"`
}

// Padrao é a navegação completa do portal, na ordem de exibição.
func Padrao() []Entrada {
	return []Entrada{
		{Titulo: "Dashboard", Rota: "/", Icone: "home"},
		{Titulo: "Cultos", Rota: "/cultos", Icone: "church", Permissoes: []string{"read_cultos"}},
		{Titulo: "Escalas", Rota: "/escalas", Icone: "calendar", Permissoes: []string{"read_escalas"}},
		{Titulo: "Pessoas", Rota: "/pessoas", Icone: "users", Permissoes: []string{"read_pessoas"}},
		{Titulo: "Visitantes", Rota: "/visitantes", Icone: "user-plus", Permissoes: []string{"read_visitantes"}},
		{Titulo: "Avaliações", Rota: "/avaliacoes", Icone: "star", Permissoes: []string{"read_avaliacoes"}},
		{Titulo: "Perfis", Rota: "/perfis", Icone: "shield", Permissoes: []string{"read_perfis"}},
		{Titulo: "Usuários", Rota: "/usuarios", Icone: "user-cog", Permissoes: []string{"read_usuarios"}},
		{Titulo: "Configurações", Rota: "/configuracoes", Icone: "settings", Permissoes: []string{"admin"}},
	}
}

// Filtrar devolve o subconjunto de entradas visível ao usuário, preservando
// a ordem relativa original. Entrada sem permissão exigida é sempre
// incluída; com mais de uma, basta qualquer uma delas.
func Filtrar(entradas []Entrada, u *entity.Usuario, av *permissao.Avaliador) []Entrada {
	visiveis := make([]Entrada, 0, len(entradas))
	for _, e := range entradas {
		if len(e.Permissoes) == 0 || av.TemQualquerPermissao(u, e.Permissoes...) {
			visiveis = append(visiveis, e)
		}
	}
	return visiveis
}
