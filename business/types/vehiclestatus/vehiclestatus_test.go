package vehiclestatus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

func Test_Parse(t *testing.T) {
	s, err := vehiclestatus.Parse("Pronto para Venda")
	require.NoError(t, err)
	assert.Equal(t, "Pronto para Venda", s.String())

	_, err = vehiclestatus.Parse("Quebrado")
	assert.Error(t, err)
}

func Test_CanTransition(t *testing.T) {
	all := []vehiclestatus.Status{
		vehiclestatus.Entrada,
		vehiclestatus.EmReparos,
		vehiclestatus.AguardandoPecas,
		vehiclestatus.EmHigienizacao,
		vehiclestatus.EmDocumentacao,
		vehiclestatus.ProntoParaVenda,
		vehiclestatus.Vendido,
		vehiclestatus.Arquivado,
	}

	t.Run("no self transitions", func(t *testing.T) {
		for _, s := range all {
			assert.False(t, vehiclestatus.CanTransition(s, s), s.String())
		}
	})

	t.Run("sold only archives", func(t *testing.T) {
		for _, to := range all {
			want := to.Equal(vehiclestatus.Arquivado)
			assert.Equal(t, want, vehiclestatus.CanTransition(vehiclestatus.Vendido, to), to.String())
		}
	})

	t.Run("archived only re-enters at intake", func(t *testing.T) {
		for _, to := range all {
			want := to.Equal(vehiclestatus.Entrada)
			assert.Equal(t, want, vehiclestatus.CanTransition(vehiclestatus.Arquivado, to), to.String())
		}
	})

	t.Run("preparation stages move freely", func(t *testing.T) {
		prep := []vehiclestatus.Status{
			vehiclestatus.Entrada,
			vehiclestatus.EmReparos,
			vehiclestatus.AguardandoPecas,
			vehiclestatus.EmHigienizacao,
			vehiclestatus.EmDocumentacao,
			vehiclestatus.ProntoParaVenda,
		}

		for _, from := range prep {
			for _, to := range all {
				if from.Equal(to) {
					continue
				}
				assert.True(t, vehiclestatus.CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	})
}
