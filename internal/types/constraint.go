package types

// ConstraintOp is a version comparison operator of a requirement line.
type ConstraintOp string

const (
	ConstraintOpNone     ConstraintOp = ""
	ConstraintOpEq       ConstraintOp = "=="
	ConstraintOpArbitrEq ConstraintOp = "==="
	ConstraintOpNe       ConstraintOp = "!="
	ConstraintOpGte      ConstraintOp = ">="
	ConstraintOpLte      ConstraintOp = "<="
	ConstraintOpGt       ConstraintOp = ">"
	ConstraintOpLt       ConstraintOp = "<"
	ConstraintOpCompat   ConstraintOp = "~="
)

// Requirement is one package line of a Python requirements file.
type Requirement struct {
	Name      string
	Op        ConstraintOp
	Specifier string
	Line      int
}
