package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/storage"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

// AuthService troca dados de identidade com o backend e mantém o escopo
// persistido da sessão em dia. É o único componente que grava credenciais
// no armazenamento; quem decide destruir o estado em memória é o contexto
// de autenticação, não este serviço.
type AuthService struct {
	sessao *Sessao
	escopo *storage.Escopo
	log    *logger.Logger
}

// NovoAuthService constrói o serviço de identidade de uma sessão.
func NovoAuthService(sessao *Sessao, escopo *storage.Escopo, log *logger.Logger) *AuthService {
	return &AuthService{sessao: sessao, escopo: escopo, log: log}
}

type respostaLogin struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Error   string          `json:"error"`
	Usuario *entity.Usuario `json:"usuario"`
}

type respostaVerify struct {
	Success bool            `json:"success"`
	Usuario *entity.Usuario `json:"usuario"`
}

type respostaSimples struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Login autentica email/senha no backend e devolve o usuário normalizado
// com o token emitido. Não persiste nada: gravar ou descartar a credencial
// é decisão do contexto de autenticação, tomada sob a época corrente — um
// login que resolve obsoleto nunca chega a tocar o armazenamento.
//
// Rejeição explícita (credenciais ruins) volta como ErrCredenciaisInvalidas
// com a mensagem do backend; falha de transporte propaga como
// ErrIndisponivel — os chamadores distinguem "recusado" de "inalcançável".
func (a *AuthService) Login(ctx context.Context, email, senha string) (*entity.Usuario, string, error) {
	var resp respostaLogin
	err := a.sessao.Post(ctx, "/auth/login", map[string]string{"email": email, "senha": senha}, &resp)
	if err != nil {
		return nil, "", err
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "erro ao fazer login"
		}
		return nil, "", fmt.Errorf("%w: %s", domain.ErrCredenciaisInvalidas, msg)
	}

	u := resp.Usuario
	u.Normalizar()
	if !u.Valido() {
		return nil, "", domain.ErrPayloadInvalido
	}
	return u, resp.Token, nil
}

// VerificarToken checa a validade do token armazenado. Sem token, ou com o
// token já expirado localmente, responde inválido sem tocar a rede. Não
// limpa estado algum: essa decisão é do contexto de autenticação, o que
// mantém a operação idempotente.
func (a *AuthService) VerificarToken(ctx context.Context) (*entity.Usuario, error) {
	token, ok := a.escopo.Token()
	if !ok {
		return nil, domain.ErrNaoAutorizado
	}
	if expirado(token) {
		return nil, fmt.Errorf("%w: token expirado", domain.ErrNaoAutorizado)
	}

	var resp respostaVerify
	if err := a.sessao.Get(ctx, "/auth/verify", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, domain.ErrNaoAutorizado
	}
	if resp.Usuario == nil {
		// Verificação positiva sem payload aproveitável: o chamador usa o
		// snapshot em cache.
		return nil, nil
	}
	resp.Usuario.Normalizar()
	if !resp.Usuario.Valido() {
		return nil, domain.ErrPayloadInvalido
	}
	return resp.Usuario, nil
}

// NotificarLogout avisa o backend do encerramento da sessão. Melhor
// esforço: falha vira log local, nunca erro propagado.
func (a *AuthService) NotificarLogout(ctx context.Context) {
	if err := a.sessao.Post(ctx, "/auth/logout", nil, nil); err != nil {
		a.log.Debug().Err(err).Msg("notificação de logout falhou")
	}
}

// LimparLocal descarta token e snapshot persistidos da sessão.
func (a *AuthService) LimparLocal() {
	a.escopo.Limpar()
}

// Logout notifica o backend e limpa as credenciais locais. A limpeza é
// incondicional: o estado local jamais fica autenticado porque o servidor
// não respondeu.
func (a *AuthService) Logout(ctx context.Context) {
	defer a.LimparLocal()
	a.NotificarLogout(ctx)
}

// AlterarSenha troca a senha do usuário autenticado.
func (a *AuthService) AlterarSenha(ctx context.Context, senhaAtual, novaSenha string) error {
	return a.postSimples(ctx, "/auth/change-password", map[string]string{
		"senhaAtual": senhaAtual,
		"novaSenha":  novaSenha,
	})
}

// EsqueciSenha solicita o e-mail de redefinição de senha.
func (a *AuthService) EsqueciSenha(ctx context.Context, email string) error {
	return a.postSimples(ctx, "/auth/forgot-password", map[string]string{"email": email})
}

// RedefinirSenha aplica uma nova senha usando o token recebido por e-mail.
func (a *AuthService) RedefinirSenha(ctx context.Context, token, novaSenha string) error {
	return a.postSimples(ctx, "/auth/reset-password", map[string]string{
		"token":     token,
		"novaSenha": novaSenha,
	})
}

func (a *AuthService) postSimples(ctx context.Context, caminho string, corpo any) error {
	var resp respostaSimples
	if err := a.sessao.Post(ctx, caminho, corpo, &resp); err != nil {
		return err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "operação recusada pelo servidor"
		}
		return errors.New(msg)
	}
	return nil
}

// expirado espia o claim exp do JWT sem validar assinatura (validação é
// responsabilidade do backend). Token sem exp decodificável segue para a
// verificação em rede.
func expirado(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
