package vehiclebus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Checklist_Normalize(t *testing.T) {
	cl := Checklist{
		Categories: []Category{
			{
				Name: "  Mecânica ",
				Items: []Item{
					{Name: " Freios ", Done: true, Observation: " pastilhas novas "},
					{Name: "Óleo"},
					{Name: "Freios", Done: false},
					{Name: "   "},
				},
			},
			{
				Name: "Estética",
				Items: []Item{
					{Name: "Pintura"},
				},
			},
			{
				Name:  "Vazia",
				Items: []Item{{Name: ""}},
			},
			{
				Name: "Mecânica",
				Items: []Item{
					{Name: "Suspensão"},
				},
			},
		},
	}

	got := cl.Normalize()

	require.Len(t, got.Categories, 2)

	// Categories sorted by name, empties and duplicates dropped.
	assert.Equal(t, "Estética", got.Categories[0].Name)
	assert.Equal(t, "Mecânica", got.Categories[1].Name)

	mec := got.Categories[1]
	require.Len(t, mec.Items, 2)
	assert.Equal(t, "Freios", mec.Items[0].Name)
	assert.Equal(t, "Óleo", mec.Items[1].Name)

	// First occurrence wins for duplicate items.
	assert.True(t, mec.Items[0].Done)
	assert.Equal(t, "pastilhas novas", mec.Items[0].Observation)
}

func Test_Checklist_Normalize_Empty(t *testing.T) {
	assert.Equal(t, Checklist{}, Checklist{}.Normalize())

	cl := Checklist{
		Categories: []Category{
			{Name: "  ", Items: []Item{{Name: "x"}}},
			{Name: "A", Items: nil},
		},
	}
	assert.Equal(t, Checklist{}, cl.Normalize())
}

func Test_Checklist_Normalize_Idempotent(t *testing.T) {
	cl := Checklist{
		Categories: []Category{
			{
				Name: "B",
				Items: []Item{
					{Name: "z"},
					{Name: "a", Done: true},
				},
			},
			{
				Name: "A",
				Items: []Item{
					{Name: "m", Observation: "ok"},
				},
			},
		},
	}

	once := cl.Normalize()
	twice := once.Normalize()

	assert.Equal(t, once, twice)
}
