package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Presupuestos-api/pkg/nit"
)

func TestComputeVerificationDigit(t *testing.T) {
	// 900123456 → suma ponderada 586, 586 % 11 = 3, dígito = 11 - 3 = 8
	d, err := nit.ComputeVerificationDigit("900123456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), d)
}

func TestValidateVerificationDigit_Formatos(t *testing.T) {
	// El mismo NIT con y sin separadores debe validar igual.
	for _, s := range []string{"900123456-8", "900.123.456-8", "9001234568"} {
		assert.NoError(t, nit.ValidateVerificationDigit(s), s)
	}
}

func TestValidateVerificationDigit_DigitoIncorrecto(t *testing.T) {
	err := nit.ValidateVerificationDigit("900123456-7")
	assert.Error(t, err, "dígito de verificación incorrecto debe rechazarse")
}

func TestValidateVerificationDigit_SinDigito(t *testing.T) {
	err := nit.ValidateVerificationDigit("900123456")
	assert.Error(t, err, "NIT sin dígito de verificación debe rechazarse")
}

func TestValidateVerificationDigit_MuyCorto(t *testing.T) {
	err := nit.ValidateVerificationDigit("12345")
	assert.Error(t, err)
}
