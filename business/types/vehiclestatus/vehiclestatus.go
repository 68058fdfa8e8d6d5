// Package vehiclestatus represents the preparation pipeline status of a
// vehicle and the set of legal transitions between statuses.
package vehiclestatus

import "fmt"

// The set of statuses a vehicle moves through.
var (
	Entrada         = newStatus("Entrada")
	EmReparos       = newStatus("Em Reparos")
	AguardandoPecas = newStatus("Aguardando Peças")
	EmHigienizacao  = newStatus("Em Higienização")
	EmDocumentacao  = newStatus("Em Documentação")
	ProntoParaVenda = newStatus("Pronto para Venda")
	Vendido         = newStatus("Vendido")
	Arquivado       = newStatus("Arquivado")
)

// =============================================================================

// Set of known statuses.
var statuses = make(map[string]Status)

// Status represents a pipeline status in the system.
type Status struct {
	value string
}

func newStatus(status string) Status {
	s := Status{status}
	statuses[status] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	status, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid status %q", value)
	}

	return status, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	status, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return status
}

// =============================================================================

// CanTransition reports whether moving a vehicle from one status to another
// is legal. Preparation stages may move freely between each other and into
// Vendido or Arquivado, keeping flexibility for manual corrections. A sold
// vehicle can only be archived and an archived vehicle can only re-enter the
// pipeline at Entrada. No status transitions to itself.
func CanTransition(from Status, to Status) bool {
	if from == to {
		return false
	}

	switch from {
	case Vendido:
		return to == Arquivado
	case Arquivado:
		return to == Entrada
	}

	return true
}
