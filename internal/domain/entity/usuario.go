package entity

import "strings"

// Perfis conhecidos do sistema. A lista de perfis com acesso total é
// configuração (ADMIN_PROFILES); estas constantes existem para evitar
// strings soltas no código.
const (
	PerfilAdministrador = "Administrador"
	PerfilPastor        = "Pastor"
	PerfilLider         = "Líder"
	PerfilSecretario    = "Secretário"
	PerfilMembro        = "Membro"
	PerfilVisitante     = "Visitante"
)

// Permissao é uma capacidade nomeada dentro de um perfil.
// O campo canônico de comparação é Codigo; Nome é apenas rótulo de exibição.
// O backend histórico envia ora só nome, ora nome e código — Normalizar
// resolve a ambiguidade na fronteira.
type Permissao struct {
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
}

// Perfil agrupa permissões e um nível de acesso numérico.
// Cada usuário tem exatamente um perfil por vez.
type Perfil struct {
	ID          int64       `json:"id"`
	Nome        string      `json:"nome"`
	NivelAcesso int         `json:"nivel_acesso"`
	Permissoes  []Permissao `json:"permissoes"`
}

// Pessoa é o registro de membro/congregado vinculado à conta (opcional).
type Pessoa struct {
	ID           int64  `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	Telefone     string `json:"telefone,omitempty"`
}

// Usuario é a identidade autenticada mantida pela sessão.
type Usuario struct {
	ID     int64   `json:"id"`
	Nome   string  `json:"nome"`
	Email  string  `json:"email"`
	Perfil *Perfil `json:"perfil"`
	Pessoa *Pessoa `json:"pessoa,omitempty"`
}

// Normalizar saneia um payload vindo do backend: apara espaços e preenche
// Codigo a partir de Nome quando o backend envia só o nome (hoje o nome é
// usado como código). Deve ser chamado na fronteira do gateway, nunca
// adiado para a camada de interface.
func (u *Usuario) Normalizar() {
	if u == nil {
		return
	}
	u.Email = strings.TrimSpace(u.Email)
	u.Nome = strings.TrimSpace(u.Nome)
	if u.Perfil == nil {
		return
	}
	u.Perfil.Nome = strings.TrimSpace(u.Perfil.Nome)
	for i := range u.Perfil.Permissoes {
		p := &u.Perfil.Permissoes[i]
		p.Codigo = strings.TrimSpace(p.Codigo)
		p.Nome = strings.TrimSpace(p.Nome)
		if p.Codigo == "" {
			p.Codigo = p.Nome
		}
	}
}

// Valido informa se o registro tem o mínimo para sustentar uma sessão:
// identificador e email. Perfil ausente é aceito (vira sessão sem permissões),
// perfil presente sem nome não é.
func (u *Usuario) Valido() bool {
	if u == nil || u.ID == 0 || u.Email == "" {
		return false
	}
	if u.Perfil != nil && u.Perfil.Nome == "" {
		return false
	}
	return true
}
