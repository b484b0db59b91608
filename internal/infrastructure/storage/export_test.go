package storage

import "testing"

// GravarUsuarioCru escreve um valor cru na coluna de snapshot, simulando
// corrupção de dados.
func GravarUsuarioCru(t *testing.T, s *Store, sid, raw string) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO sessoes (sid, usuario) VALUES (?, ?)
		 ON CONFLICT(sid) DO UPDATE SET usuario = excluded.usuario`,
		sid, raw,
	)
	if err != nil {
		t.Fatalf("gravar snapshot cru: %v", err)
	}
}
