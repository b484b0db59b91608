// Package storage guarda o estado durável de cada sessão do portal: o token
// bearer e o último snapshot de usuário conhecido. É o equivalente, no lado
// do portal, do localStorage do navegador: sobrevive a recargas, mas não
// dispensa a revalidação feita na inicialização da sessão.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "modernc.org/sqlite"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessoes (
	sid           TEXT PRIMARY KEY,
	token         TEXT NOT NULL DEFAULT '',
	usuario       TEXT NOT NULL DEFAULT '',
	atualizado_em TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Store é o armazenamento SQLite compartilhado por todas as sessões.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Abrir abre (criando se preciso) o banco de sessões e aplica o schema.
func Abrir(caminho string, log *logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", caminho)
	if err != nil {
		return nil, err
	}
	// O driver é puro Go mas o arquivo é um só; serializar evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Fechar fecha o banco subjacente.
func (s *Store) Fechar() error {
	return s.db.Close()
}

// Escopo devolve a visão do armazenamento restrita a uma sessão.
func (s *Store) Escopo(sid string) *Escopo {
	return &Escopo{store: s, sid: sid}
}

// RemoverEscopo apaga todo o registro de uma sessão encerrada.
func (s *Store) RemoverEscopo(sid string) {
	if _, err := s.db.Exec(`DELETE FROM sessoes WHERE sid = ?`, sid); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("remover escopo de sessão")
	}
}

// Escopo expõe as operações de persistência de uma única sessão.
// Todas são totais: falha de armazenamento ou JSON malformado nunca viram
// erro para o chamador — leitura devolve "ausente" e escrita registra em log.
type Escopo struct {
	store *Store
	sid   string
}

// SID devolve o identificador da sessão deste escopo.
func (e *Escopo) SID() string { return e.sid }

// DefinirToken grava o token bearer da sessão.
func (e *Escopo) DefinirToken(token string) {
	e.gravar("token", token)
}

// Token devolve o token armazenado, ou ok=false se ausente.
func (e *Escopo) Token() (string, bool) {
	v := e.ler("token")
	return v, v != ""
}

// LimparToken remove o token armazenado.
func (e *Escopo) LimparToken() {
	e.gravar("token", "")
}

// DefinirUsuario grava o snapshot de usuário da sessão.
func (e *Escopo) DefinirUsuario(u *entity.Usuario) {
	if u == nil {
		e.LimparUsuario()
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		e.store.log.Warn().Err(err).Str("sid", e.sid).Msg("serializar usuário da sessão")
		return
	}
	e.gravar("usuario", string(data))
}

// Usuario devolve o snapshot armazenado, ou ok=false se ausente ou malformado.
// JSON corrompido é tratado como ausência, nunca como falha.
func (e *Escopo) Usuario() (*entity.Usuario, bool) {
	raw := e.ler("usuario")
	if raw == "" {
		return nil, false
	}
	var u entity.Usuario
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		e.store.log.Warn().Err(err).Str("sid", e.sid).Msg("snapshot de usuário corrompido, tratando como ausente")
		return nil, false
	}
	return &u, true
}

// LimparUsuario remove o snapshot armazenado.
func (e *Escopo) LimparUsuario() {
	e.gravar("usuario", "")
}

// Limpar remove token e snapshot de uma vez.
func (e *Escopo) Limpar() {
	if _, err := e.store.db.Exec(
		`UPDATE sessoes SET token = '', usuario = '', atualizado_em = CURRENT_TIMESTAMP WHERE sid = ?`,
		e.sid,
	); err != nil {
		e.store.log.Warn().Err(err).Str("sid", e.sid).Msg("limpar sessão")
	}
}

func (e *Escopo) gravar(coluna, valor string) {
	// coluna vem de chamadas internas fixas ("token"/"usuario"), nunca de entrada externa.
	q := `INSERT INTO sessoes (sid, ` + coluna + `) VALUES (?, ?)
	      ON CONFLICT(sid) DO UPDATE SET ` + coluna + ` = excluded.` + coluna + `, atualizado_em = CURRENT_TIMESTAMP`
	if _, err := e.store.db.Exec(q, e.sid, valor); err != nil {
		e.store.log.Warn().Err(err).Str("sid", e.sid).Str("campo", coluna).Msg("gravar sessão")
	}
}

func (e *Escopo) ler(coluna string) string {
	var v string
	err := e.store.db.QueryRow(`SELECT `+coluna+` FROM sessoes WHERE sid = ?`, e.sid).Scan(&v)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			e.store.log.Warn().Err(err).Str("sid", e.sid).Str("campo", coluna).Msg("ler sessão")
		}
		return ""
	}
	return v
}
