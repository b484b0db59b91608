package br_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/br"
)

func TestRemoverMascara(t *testing.T) {
	assert.Equal(t, "11987654321", br.RemoverMascara("(11) 98765-4321"))
	assert.Equal(t, "12345678901", br.RemoverMascara("123.456.789-01"))
	assert.Equal(t, "", br.RemoverMascara("abc"))
}

func TestMascararTelefone(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", br.MascararTelefone("11987654321"), "celular com 11 dígitos")
	assert.Equal(t, "(11) 3876-5432", br.MascararTelefone("1138765432"), "fixo com 10 dígitos")
	assert.Equal(t, "123", br.MascararTelefone("123"), "curto demais volta como entrou")
}

func TestMascararCPF(t *testing.T) {
	assert.Equal(t, "123.456.789-09", br.MascararCPF("12345678909"))
	assert.Equal(t, "123.456.789-09", br.MascararCPF("123.456.789-09"), "já mascarado é idempotente")
	assert.Equal(t, "123", br.MascararCPF("123"))
}

func TestMascararCEP(t *testing.T) {
	assert.Equal(t, "01310-100", br.MascararCEP("01310100"))
	assert.Equal(t, "0131", br.MascararCEP("0131"))
}

func TestValidarTelefone(t *testing.T) {
	assert.True(t, br.ValidarTelefone("(11) 98765-4321"))
	assert.True(t, br.ValidarTelefone("1138765432"))
	assert.False(t, br.ValidarTelefone("123456"))
}

func TestValidarCEP(t *testing.T) {
	assert.True(t, br.ValidarCEP("01310-100"))
	assert.False(t, br.ValidarCEP("0131"))
}

func TestValidarCPF(t *testing.T) {
	// Dígitos verificadores corretos.
	assert.True(t, br.ValidarCPF("529.982.247-25"))
	assert.True(t, br.ValidarCPF("52998224725"))

	// Dígito verificador errado.
	assert.False(t, br.ValidarCPF("529.982.247-26"))

	// Sequências repetidas são inválidas mesmo com verificadores "corretos".
	assert.False(t, br.ValidarCPF("111.111.111-11"))
	assert.False(t, br.ValidarCPF("000.000.000-00"))

	// Tamanho errado.
	assert.False(t, br.ValidarCPF("1234567890"))
}

func TestRemoverAcentos(t *testing.T) {
	assert.Equal(t, "Secretario", br.RemoverAcentos("Secretário"))
	assert.Equal(t, "avaliacao de culto", br.RemoverAcentos("avaliação de culto"))
	assert.Equal(t, "sem acento", br.RemoverAcentos("sem acento"))
}

func TestNormalizarBusca(t *testing.T) {
	assert.Equal(t, "joao da silva", br.NormalizarBusca("  João da Silva "))
	assert.Equal(t, "culto de cura", br.NormalizarBusca("CULTO DE CURA"))
	assert.Equal(t, "", br.NormalizarBusca("   "))
}
