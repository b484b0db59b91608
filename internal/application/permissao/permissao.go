// Package permissao implementa o motor de avaliação de permissões.
//
// Todas as funções são totais: usuário ausente, perfil ausente ou conjunto
// vazio devolvem false, nunca pânico. A negação é o padrão em qualquer
// caminho de erro. A comparação é sempre pelo campo canônico Codigo — o
// gateway normaliza payloads que chegam só com nome.
package permissao

import (
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
)

// Avaliador avalia permissões contra uma lista configurável de perfis com
// acesso total (sentinelas de administrador). A lista vem de configuração:
// dar acesso total a um perfil como "Pastor" é decisão de implantação, não
// de código.
type Avaliador struct {
	administradores map[string]struct{}
}

// NovoAvaliador constrói o avaliador. Com lista vazia ou nil, valem os
// sentinelas históricos "Administrador" e "admin".
func NovoAvaliador(perfisAdministradores []string) *Avaliador {
	if len(perfisAdministradores) == 0 {
		perfisAdministradores = []string{entity.PerfilAdministrador, "admin"}
	}
	admins := make(map[string]struct{}, len(perfisAdministradores))
	for _, nome := range perfisAdministradores {
		admins[nome] = struct{}{}
	}
	return &Avaliador{administradores: admins}
}

// EhAdministrador informa se o perfil do usuário é um sentinela de acesso
// total.
func (a *Avaliador) EhAdministrador(u *entity.Usuario) bool {
	if u == nil || u.Perfil == nil {
		return false
	}
	_, ok := a.administradores[u.Perfil.Nome]
	return ok
}

// TemPermissao informa se o usuário detém a permissão de código dado.
// Ordem de avaliação: sem usuário ou perfil -> false; perfil sentinela ->
// true, ignorando o conjunto (mesmo vazio); senão, pertencimento exato no
// conjunto do perfil.
func (a *Avaliador) TemPermissao(u *entity.Usuario, codigo string) bool {
	if u == nil || u.Perfil == nil {
		return false
	}
	if a.EhAdministrador(u) {
		return true
	}
	for _, p := range u.Perfil.Permissoes {
		if p.Codigo == codigo {
			return true
		}
	}
	return false
}

// TemQualquerPermissao informa se o usuário detém ao menos uma das
// permissões listadas. Lista vazia nega ("qualquer uma de nenhuma" é
// false); um único código equivale a TemPermissao.
func (a *Avaliador) TemQualquerPermissao(u *entity.Usuario, codigos ...string) bool {
	for _, c := range codigos {
		if a.TemPermissao(u, c) {
			return true
		}
	}
	return false
}

// TemTodasPermissoes informa se o usuário detém todas as permissões
// listadas. Lista vazia nega, espelhando TemQualquerPermissao.
func (a *Avaliador) TemTodasPermissoes(u *entity.Usuario, codigos ...string) bool {
	if len(codigos) == 0 {
		return false
	}
	for _, c := range codigos {
		if !a.TemPermissao(u, c) {
			return false
		}
	}
	return true
}

// TemNivelAcesso informa se o nível de acesso do perfil alcança o mínimo.
func (a *Avaliador) TemNivelAcesso(u *entity.Usuario, nivelMinimo int) bool {
	if u == nil || u.Perfil == nil {
		return false
	}
	return u.Perfil.NivelAcesso >= nivelMinimo
}

// ObterPermissoes devolve os códigos de permissão do usuário (vazio se não
// houver sessão ou perfil). Perfis sentinela não são expandidos: o acesso
// total deles é decidido na avaliação, não materializado em lista.
func (a *Avaliador) ObterPermissoes(u *entity.Usuario) []string {
	if u == nil || u.Perfil == nil {
		return nil
	}
	codigos := make([]string, 0, len(u.Perfil.Permissoes))
	for _, p := range u.Perfil.Permissoes {
		codigos = append(codigos, p.Codigo)
	}
	return codigos
}

// ── Predicados de conveniência usados pelas telas ─────────────────────────────

func (a *Avaliador) PodeGerenciarCultos(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_cultos", "create_cultos", "update_cultos", "delete_cultos")
}

func (a *Avaliador) PodeCriarCultos(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_cultos", "create_cultos")
}

func (a *Avaliador) PodeEditarCultos(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_cultos", "update_cultos")
}

func (a *Avaliador) PodeExcluirCultos(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_cultos", "delete_cultos")
}

func (a *Avaliador) PodeVisualizarCultos(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_cultos", "create_cultos", "read_cultos", "update_cultos", "delete_cultos")
}

func (a *Avaliador) PodeGerenciarEscalas(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_escalas", "create_escalas", "update_escalas", "delete_escalas")
}

func (a *Avaliador) PodeGerenciarPessoas(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_pessoas", "create_pessoas", "update_pessoas", "delete_pessoas")
}

func (a *Avaliador) PodeGerenciarVisitantes(u *entity.Usuario) bool {
	return a.TemQualquerPermissao(u, "manage_visitantes", "create_visitantes", "update_visitantes", "delete_visitantes")
}

func (a *Avaliador) PodeAcessarRelatorios(u *entity.Usuario) bool {
	return a.TemPermissao(u, "read_relatorios")
}

// rotasPermissoes mapeia rotas do portal para as permissões que as liberam.
// Rota fora do mapa é pública.
var rotasPermissoes = map[string][]string{
	"/cultos":     {"read_cultos", "manage_cultos"},
	"/escalas":    {"read_escalas", "manage_escalas"},
	"/pessoas":    {"read_pessoas", "manage_pessoas"},
	"/visitantes": {"read_visitantes", "manage_visitantes"},
	"/relatorios": {"read_relatorios"},
	"/admin":      {"admin_sistema"},
}

// PodeAcessarRota informa se o usuário pode acessar a rota dada.
func (a *Avaliador) PodeAcessarRota(u *entity.Usuario, rota string) bool {
	codigos, ok := rotasPermissoes[rota]
	if !ok {
		return true
	}
	return a.TemQualquerPermissao(u, codigos...)
}
