// Package br reúne formatação e validação de dados brasileiros usados pelo
// portal: telefone, CPF, CEP e normalização de texto para busca.
package br

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoverMascara devolve apenas os dígitos de um valor mascarado.
func RemoverMascara(valor string) string {
	var b strings.Builder
	for _, r := range valor {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MascararTelefone aplica a máscara de telefone brasileiro:
// (11) 9999-9999 para fixo, (11) 99999-9999 para celular.
func MascararTelefone(valor string) string {
	n := RemoverMascara(valor)
	switch {
	case len(n) >= 11:
		n = n[:11]
		return "(" + n[:2] + ") " + n[2:7] + "-" + n[7:]
	case len(n) == 10:
		return "(" + n[:2] + ") " + n[2:6] + "-" + n[6:]
	default:
		return valor
	}
}

// MascararCPF aplica a máscara 999.999.999-99. Valores com tamanho
// diferente de 11 dígitos voltam como entraram.
func MascararCPF(valor string) string {
	n := RemoverMascara(valor)
	if len(n) != 11 {
		return valor
	}
	return n[:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:]
}

// MascararCEP aplica a máscara 99999-999.
func MascararCEP(valor string) string {
	n := RemoverMascara(valor)
	if len(n) != 8 {
		return valor
	}
	return n[:5] + "-" + n[5:]
}

// ValidarTelefone aceita fixo (10 dígitos) ou celular (11 dígitos).
func ValidarTelefone(telefone string) bool {
	n := len(RemoverMascara(telefone))
	return n >= 10 && n <= 11
}

// ValidarCEP exige exatamente 8 dígitos.
func ValidarCEP(cep string) bool {
	return len(RemoverMascara(cep)) == 8
}

// ValidarCPF verifica os dois dígitos verificadores do CPF.
// Sequências de dígitos repetidos (111.111.111-11 etc.) são inválidas.
func ValidarCPF(cpf string) bool {
	n := RemoverMascara(cpf)
	if len(n) != 11 {
		return false
	}
	repetido := true
	for i := 1; i < 11; i++ {
		if n[i] != n[0] {
			repetido = false
			break
		}
	}
	if repetido {
		return false
	}
	if digitoVerificador(n, 9) != int(n[9]-'0') {
		return false
	}
	return digitoVerificador(n, 10) == int(n[10]-'0')
}

// digitoVerificador calcula o dígito verificador da posição pos
// (9 para o primeiro, 10 para o segundo).
func digitoVerificador(n string, pos int) int {
	soma := 0
	for i := 0; i < pos; i++ {
		soma += int(n[i]-'0') * (pos + 1 - i)
	}
	resto := 11 - soma%11
	if resto >= 10 {
		return 0
	}
	return resto
}

// removedorAcentos decompõe em NFD, descarta marcas combinantes e recompõe.
var removedorAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoverAcentos devolve o texto sem marcas diacríticas ("Secretário" -> "Secretario").
func RemoverAcentos(texto string) string {
	out, _, err := transform.String(removedorAcentos, texto)
	if err != nil {
		return texto
	}
	return out
}

// NormalizarBusca prepara um termo de busca para comparação
// insensível a caixa e acentos.
func NormalizarBusca(termo string) string {
	return strings.ToLower(RemoverAcentos(strings.TrimSpace(termo)))
}
