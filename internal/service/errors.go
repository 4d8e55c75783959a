package service

import (
	"errors"
	"fmt"
)

// Erros de negócio. Handlers traduzem cada sentinela para o status HTTP
// correspondente via errors.Is — nunca pela string da mensagem.
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrConflict             = errors.New("conflito com o estado atual")
	ErrEstoqueInsuficiente  = errors.New("estoque insuficiente")
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
)

// ValidacaoError carrega erros de campo de entrada malformada ou fora de faixa.
type ValidacaoError struct {
	Fields map[string]string
}

func (e *ValidacaoError) Error() string {
	return fmt.Sprintf("erro de validação: %v", e.Fields)
}

// NewValidacao builds a single-field validation error.
func NewValidacao(field, msg string) *ValidacaoError {
	return &ValidacaoError{Fields: map[string]string{field: msg}}
}

// IsValidacao reports whether err is (or wraps) a ValidacaoError.
func IsValidacao(err error) bool {
	var ve *ValidacaoError
	return errors.As(err, &ve)
}
