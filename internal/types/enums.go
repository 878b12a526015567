package types

// Phase orders deferred finalize work. Lower phases run first; the values
// leave room between phases the way nice levels do.
type Phase int

const (
	PhaseInherit      Phase = 0
	PhaseDeleteAvoid  Phase = 1
	PhaseValidColumn  Phase = 25
	PhaseOutputString Phase = 30
)

// Phases lists every phase in execution order.
var Phases = []Phase{PhaseInherit, PhaseDeleteAvoid, PhaseValidColumn, PhaseOutputString}

func (p Phase) String() string {
	switch p {
	case PhaseInherit:
		return "inherit"
	case PhaseDeleteAvoid:
		return "delete-and-avoid"
	case PhaseValidColumn:
		return "valid-column"
	case PhaseOutputString:
		return "output-string"
	default:
		return "unknown"
	}
}

type OperatorKind string

const (
	OperatorOptional  OperatorKind = "optional"
	OperatorAssign    OperatorKind = "assign"
	OperatorDelegator OperatorKind = "delegator"
	OperatorImporter  OperatorKind = "importer"
)

type CommandKind string

const (
	CommandAXM   CommandKind = "AXM"
	CommandSect  CommandKind = "SECT"
	CommandDel   CommandKind = "DEL"
	CommandAvoid CommandKind = "AVOID"
)

type StructKind string

const (
	StructFloat StructKind = "float"
	StructSect  StructKind = "sect"
)

// Table names used by the lookup data file and the field transforms.
const (
	TableUnits             = "units"
	TableProductCategories = "product_categories"
	TableProductFamilies   = "product_families"
	TableProductTypes      = "product_types"
)
