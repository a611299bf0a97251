package inventory

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// Command es una solicitud de movimiento de stock. Sólo existen las cuatro variantes
// de este paquete, de modo que un traslado sin destino no se puede construir.
type Command interface {
	Type() entity.MovementType
	Amount() int64
	Note() string
	// effects devuelve el cambio de cada contador tocado por el movimiento.
	effects() []Effect
}

// Effect es el cambio con signo que un movimiento aplica a un contador.
type Effect struct {
	ProductLocationID int64
	Delta             int64
}

// Entry suma Quantity al contador. Si ProductLocationID es 0 se usa el par
// ProductID/LocationID y el contador se crea en la primera entrada.
type Entry struct {
	ProductLocationID int64
	ProductID         int64
	LocationID        int64
	Quantity          int64
	Notes             string
}

// Exit resta Quantity del contador.
type Exit struct {
	ProductLocationID int64
	Quantity          int64
	Notes             string
}

// Adjustment corrige el contador con una cantidad con signo.
type Adjustment struct {
	ProductLocationID int64
	Quantity          int64
	Notes             string
}

// Transfer mueve Quantity de Source a Target en una sola operación.
type Transfer struct {
	SourceProductLocationID int64
	TargetProductLocationID int64
	Quantity                int64
	Notes                   string
}

func (Entry) Type() entity.MovementType      { return entity.MovementTypeEntry }
func (Exit) Type() entity.MovementType       { return entity.MovementTypeExit }
func (Adjustment) Type() entity.MovementType { return entity.MovementTypeAdjustment }
func (Transfer) Type() entity.MovementType   { return entity.MovementTypeTransfer }

func (c Entry) Amount() int64      { return c.Quantity }
func (c Exit) Amount() int64       { return c.Quantity }
func (c Adjustment) Amount() int64 { return c.Quantity }
func (c Transfer) Amount() int64   { return c.Quantity }

func (c Entry) Note() string      { return c.Notes }
func (c Exit) Note() string       { return c.Notes }
func (c Adjustment) Note() string { return c.Notes }
func (c Transfer) Note() string   { return c.Notes }

func (c Entry) effects() []Effect {
	return []Effect{{ProductLocationID: c.ProductLocationID, Delta: c.Quantity}}
}

func (c Exit) effects() []Effect {
	return []Effect{{ProductLocationID: c.ProductLocationID, Delta: -c.Quantity}}
}

func (c Adjustment) effects() []Effect {
	return []Effect{{ProductLocationID: c.ProductLocationID, Delta: c.Quantity}}
}

func (c Transfer) effects() []Effect {
	return []Effect{
		{ProductLocationID: c.SourceProductLocationID, Delta: -c.Quantity},
		{ProductLocationID: c.TargetProductLocationID, Delta: c.Quantity},
	}
}

// Effects expone los cambios por contador de cmd.
func Effects(cmd Command) []Effect { return cmd.effects() }

// EffectsOf reconstruye los cambios de un movimiento ya persistido.
func EffectsOf(m *entity.Movement) []Effect {
	switch m.Type {
	case entity.MovementTypeExit:
		return []Effect{{ProductLocationID: m.ProductLocationID, Delta: -m.Quantity}}
	case entity.MovementTypeTransfer:
		if m.TargetProductLocationID == nil {
			return nil
		}
		return []Effect{
			{ProductLocationID: m.ProductLocationID, Delta: -m.Quantity},
			{ProductLocationID: *m.TargetProductLocationID, Delta: m.Quantity},
		}
	default:
		return []Effect{{ProductLocationID: m.ProductLocationID, Delta: m.Quantity}}
	}
}
