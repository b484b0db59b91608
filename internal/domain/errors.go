package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	// ErrNaoAutorizado indica credencial ausente, inválida ou expirada (HTTP 401).
	ErrNaoAutorizado = errors.New("não autorizado")
	// ErrCredenciaisInvalidas indica rejeição explícita do login pelo backend.
	// É distinto de falha de transporte: o backend respondeu e recusou.
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	// ErrPermissaoNegada indica sessão válida sem a permissão exigida (HTTP 403).
	ErrPermissaoNegada = errors.New("você não tem permissão para realizar esta ação")
	// ErrIndisponivel indica falha de transporte: rede, timeout ou resposta
	// malformada. A mensagem é segura para exibição ao usuário.
	ErrIndisponivel = errors.New("erro de conexão com o servidor")
	// ErrNaoEncontrado indica recurso inexistente no backend (HTTP 404).
	ErrNaoEncontrado = errors.New("recurso não encontrado")
	// ErrPayloadInvalido indica resposta 2xx do backend com corpo que não
	// passa na validação de fronteira do gateway.
	ErrPayloadInvalido = errors.New("resposta do servidor em formato inesperado")
)
