package http

import (
	"github.com/gofiber/fiber/v2"
)

// paginaLoginHTML formulário mínimo servido pelo próprio portal. O destino
// do redirecionamento do guard quando uma navegação HTML chega sem sessão
// autenticada.
const paginaLoginHTML = `<!doctype html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8">
  <title>Portal de Cultos - Entrar</title>
</head>
<body>
  <main>
    <h1>Portal de Gerenciamento de Cultos</h1>
    <form method="post" action="/api/auth/login" id="login">
      <label>E-mail <input type="email" name="email" required></label>
      <label>Senha <input type="password" name="senha" required></label>
      <button type="submit">Entrar</button>
    </form>
  </main>
</body>
</html>`

// PaginaLogin serve o formulário de login.
func PaginaLogin(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(paginaLoginHTML)
}
