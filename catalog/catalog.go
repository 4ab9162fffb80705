// Package catalog defines the shape of a PostgreSQL catalog snapshot: the
// read-only contract handed to the IR builder. It does not connect to a
// database; producing a Snapshot is the caller's responsibility (typically
// by querying pg_class/pg_attribute/pg_type/information_schema and decoding
// into these types).
package catalog

import "errors"

// ErrUnavailable is the sentinel a collaborator returns when a catalog
// snapshot could not be obtained at all (connection failure, permission
// denial, stale handle). The engine never raises this itself; it only
// ever passes it through from whatever produced the Snapshot.
var ErrUnavailable = errors.New("catalog: unavailable")

// UnavailableError carries the reason a snapshot could not be produced.
type UnavailableError struct {
	Reason string
	Cause  error
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return "catalog: unavailable"
	}
	return "catalog: unavailable: " + e.Reason
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// RelKind mirrors pg_class.relkind.
type RelKind string

const (
	RelKindTable           RelKind = "r"
	RelKindView            RelKind = "v"
	RelKindMaterializedView RelKind = "m"
	RelKindPartitionedTable RelKind = "p"
	RelKindForeignTable    RelKind = "f"
)

// TypType mirrors pg_type.typtype.
type TypType string

const (
	TypTypeBase      TypType = "b"
	TypTypeComposite TypType = "c"
	TypTypeDomain    TypType = "d"
	TypTypeEnum      TypType = "e"
)

// Grant is one ACL entry as it appears on pg_class.relacl or a column's
// attacl, already expanded to one row per (role, privilege) pair.
type Grant struct {
	Role      string
	Privilege string // "SELECT", "INSERT", "UPDATE", "DELETE"
}

// Attribute is one pg_attribute row (a table/view column, or a composite
// type's field).
type Attribute struct {
	Name       string
	Num        int16
	TypeOID    uint32
	NotNull    bool
	HasDefault bool
	Identity   string // "", "a" (always), "d" (by default)
	Generated  string // "", "s" (stored)
	Comment    string
	Grants     []Grant
}

// Index is one pg_index row joined with pg_class for the index name.
type Index struct {
	Name       string
	Columns    []string
	Unique     bool
	Partial    bool
	Method     string
	Expression bool
}

// ConstraintKind mirrors pg_constraint.contype.
type ConstraintKind string

const (
	ConstraintPrimaryKey ConstraintKind = "p"
	ConstraintUnique     ConstraintKind = "u"
	ConstraintForeignKey ConstraintKind = "f"
	ConstraintCheck      ConstraintKind = "c"
)

// Constraint is one pg_constraint row.
type Constraint struct {
	Name    string
	Kind    ConstraintKind
	Columns []string
}

// Class is one pg_class row (a table, view, materialized view, partitioned
// table, or foreign table) together with its attributes, indexes,
// constraints and grants.
type Class struct {
	OID         uint32
	SchemaName  string
	RelName     string
	RelKind     RelKind
	Columns     []Attribute
	Indexes     []Index
	Constraints []Constraint
	Grants      []Grant
	Comment     string
}

// Type is one pg_type row: a base, composite, domain or enum type.
type Type struct {
	OID             uint32
	SchemaName      string
	TypName         string
	TypCategory     string // pg_type.typcategory, "A" denotes array
	TypType         TypType
	BaseTypeOID     uint32   // domains only
	CheckExpressions []string // domains only, raw CHECK expression text
	EnumValues      []string // enums only, in pg_enum.enumsortorder order
	CompositeFields []Attribute
	Comment         string
}

// ColumnPair is one (local column, foreign column) correspondence in a
// foreign key.
type ColumnPair struct {
	Local   string
	Foreign string
}

// ForeignKey is one pg_constraint row of kind "f", expanded with its column
// correspondences and referential actions.
type ForeignKey struct {
	Name           string
	SourceClassOID uint32
	TargetClassOID uint32
	Columns        []ColumnPair
	OnUpdate       string // "a" no action, "r" restrict, "c" cascade, "n" set null, "d" set default
	OnDelete       string
}

// Snapshot is the entire catalog handed to ir.Build. Schemas not present in
// a non-empty ir.Config.Schemas are simply not iterated by the builder; an empty
// Snapshot is valid input and produces an empty IR.
type Snapshot struct {
	Classes     []Class
	Types       []Type
	ForeignKeys []ForeignKey
}
