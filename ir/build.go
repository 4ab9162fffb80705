package ir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pgsourcerer/pgsourcerer/catalog"
	"github.com/pgsourcerer/pgsourcerer/inflect"
)

// unknownType is substituted when a referenced type OID can't be resolved
// against the snapshot's Types list, per SPEC_FULL.md §4.2's "unknown type
// marker" failure mode.
const unknownType = "unknown"

// Config controls how Build projects a catalog.Snapshot into an IR.
type Config struct {
	// Schemas limits the builder to these schema names. A schema absent
	// from the snapshot (or simply not listed here) contributes no
	// entities — this is not an error. An empty list applies no filter:
	// every schema in the snapshot contributes.
	Schemas []string
	// Role is the effective database role permissions are resolved for.
	// Grants to "PUBLIC" always apply in addition to this role's own.
	Role string
	// Inflection supplies the naming transforms. The zero value is
	// replaced with inflect.DefaultConfig().
	Inflection inflect.Config
}

// Build projects a catalog snapshot into a Semantic IR, following the six
// steps described in SPEC_FULL.md §4.2: filter by schema, resolve type
// references, classify attributes, parse smart tags, derive shapes and
// relations, then order everything deterministically by catalog OID.
func Build(snapshot catalog.Snapshot, cfg Config) (*IR, error) {
	if cfg.Inflection.ToPascal == nil {
		cfg.Inflection = inflect.DefaultConfig()
	}
	schemas := map[string]bool{}
	for _, s := range cfg.Schemas {
		schemas[s] = true
	}

	typesByOID := make(map[uint32]catalog.Type, len(snapshot.Types))
	for _, t := range snapshot.Types {
		typesByOID[t.OID] = t
	}
	classesByOID := make(map[uint32]catalog.Class, len(snapshot.Classes))
	for _, c := range snapshot.Classes {
		classesByOID[c.OID] = c
	}

	b := &builder{
		cfg:        cfg,
		schemas:    schemas,
		typesByOID: typesByOID,
		classes:    classesByOID,
		entityNameByClassOID: map[uint32]string{},
	}

	classes := filterClasses(snapshot.Classes, schemas)
	sort.Slice(classes, func(i, j int) bool { return classes[i].OID < classes[j].OID })

	types := filterTypes(snapshot.Types, schemas)
	sort.Slice(types, func(i, j int) bool { return types[i].OID < types[j].OID })

	var entities []Entity
	var entityOIDs []uint32
	for _, c := range classes {
		e, err := b.buildClassEntity(c)
		if err != nil {
			return nil, fmt.Errorf("ir: building entity for %s.%s: %w", c.SchemaName, c.RelName, err)
		}
		b.entityNameByClassOID[c.OID] = e.Name
		entities = append(entities, e)
		entityOIDs = append(entityOIDs, c.OID)
	}
	for _, t := range types {
		if t.TypType == catalog.TypTypeBase {
			continue // scalar base types never become entities of their own
		}
		e := b.buildTypeEntity(t)
		entities = append(entities, e)
		entityOIDs = append(entityOIDs, t.OID)
	}

	// One order across classes and types: ascending catalog OID.
	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return entityOIDs[order[i]] < entityOIDs[order[j]] })
	sorted := make([]Entity, len(entities))
	for i, idx := range order {
		sorted[i] = entities[idx]
	}

	ir := &IR{Entities: sorted}
	b.attachRelations(ir, snapshot.ForeignKeys, classesByOID)
	return ir, nil
}

type builder struct {
	cfg        Config
	schemas    map[string]bool
	typesByOID map[uint32]catalog.Type
	classes    map[uint32]catalog.Class

	entityNameByClassOID map[uint32]string
}

func filterClasses(classes []catalog.Class, schemas map[string]bool) []catalog.Class {
	var out []catalog.Class
	for _, c := range classes {
		if len(schemas) > 0 && !schemas[c.SchemaName] {
			continue
		}
		switch c.RelKind {
		case catalog.RelKindTable, catalog.RelKindView, catalog.RelKindMaterializedView, catalog.RelKindPartitionedTable:
			out = append(out, c)
		}
	}
	return out
}

func filterTypes(types []catalog.Type, schemas map[string]bool) []catalog.Type {
	var out []catalog.Type
	for _, t := range types {
		if len(schemas) > 0 && !schemas[t.SchemaName] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (b *builder) typeName(oid uint32) (name string, isArray bool, elementName string) {
	t, ok := b.typesByOID[oid]
	if !ok {
		return unknownType, false, ""
	}
	if t.TypCategory == "A" {
		return t.TypName, true, strings.TrimPrefix(t.TypName, "_")
	}
	return t.TypName, false, ""
}

func hasPrivilege(grants []catalog.Grant, role, privilege string) bool {
	for _, g := range grants {
		if g.Privilege != privilege {
			continue
		}
		if g.Role == role || g.Role == "PUBLIC" {
			return true
		}
	}
	return false
}

func (b *builder) buildClassEntity(c catalog.Class) (Entity, error) {
	name := b.cfg.Inflection.ToPascal(b.cfg.Inflection.Singularize(c.RelName))
	tags := parseSmartTags(c.Comment)

	entityPerms := Permissions{
		CanSelect: hasPrivilege(c.Grants, b.cfg.Role, "SELECT"),
		CanInsert: hasPrivilege(c.Grants, b.cfg.Role, "INSERT"),
		CanUpdate: hasPrivilege(c.Grants, b.cfg.Role, "UPDATE"),
		CanDelete: hasPrivilege(c.Grants, b.cfg.Role, "DELETE"),
	}

	isView := c.RelKind == catalog.RelKindView || c.RelKind == catalog.RelKindMaterializedView
	if isView {
		entityPerms.CanInsert = false
		entityPerms.CanUpdate = false
		entityPerms.CanDelete = false
	}

	sortedCols := append([]catalog.Attribute{}, c.Columns...)
	sort.Slice(sortedCols, func(i, j int) bool { return sortedCols[i].Num < sortedCols[j].Num })

	fields := make([]Field, 0, len(sortedCols))
	for _, attr := range sortedCols {
		fields = append(fields, b.buildField(attr, entityPerms))
	}

	e := Entity{
		Kind:       classEntityKind(c.RelKind),
		Name:       name,
		PgName:     c.RelName,
		SchemaName: c.SchemaName,
		Comment:    c.Comment,
		Tags:       tags,
		Permissions: entityPerms,
		Indexes:    buildIndexes(c.Indexes),
	}
	if pk := primaryKeyOf(c.Constraints); pk != nil {
		e.PrimaryKey = pk
	}
	e.Shapes = buildShapes(name, fields, isView)
	return e, nil
}

func classEntityKind(k catalog.RelKind) EntityKind {
	if k == catalog.RelKindView || k == catalog.RelKindMaterializedView {
		return EntityView
	}
	return EntityTable
}

func (b *builder) buildField(attr catalog.Attribute, entityPerms Permissions) Field {
	typeName, isArray, elementName := b.typeName(attr.TypeOID)
	fieldPerms := Permissions{
		CanSelect: entityPerms.CanSelect && hasPrivilege(attr.Grants, b.cfg.Role, "SELECT"),
		CanInsert: entityPerms.CanInsert && hasPrivilege(attr.Grants, b.cfg.Role, "INSERT"),
		CanUpdate: entityPerms.CanUpdate && hasPrivilege(attr.Grants, b.cfg.Role, "UPDATE"),
		CanDelete: entityPerms.CanDelete,
	}
	// A column with no grants of its own inherits the table-level grant
	// (attribute ACLs in PostgreSQL only ever narrow, never widen, but an
	// empty attacl means "no column-level override": fall back to the
	// table grant).
	if len(attr.Grants) == 0 {
		fieldPerms.CanSelect = entityPerms.CanSelect
		fieldPerms.CanInsert = entityPerms.CanInsert
		fieldPerms.CanUpdate = entityPerms.CanUpdate
	}

	return Field{
		Name:            b.cfg.Inflection.ToCamel(attr.Name),
		ColumnName:      attr.Name,
		TypeName:        typeName,
		IsArray:         isArray,
		ElementTypeName: elementName,
		Nullable:        !attr.NotNull,
		HasDefault:      attr.HasDefault,
		IsGenerated:     attr.Generated != "" || attr.Identity == "a",
		IsIdentity:      attr.Identity != "",
		Permissions:     fieldPerms,
		Tags:            parseSmartTags(attr.Comment),
	}
}

func buildIndexes(idx []catalog.Index) []Index {
	out := make([]Index, 0, len(idx))
	for _, i := range idx {
		out = append(out, Index{
			Name:       i.Name,
			Columns:    append([]string{}, i.Columns...),
			Unique:     i.Unique,
			Partial:    i.Partial,
			Method:     i.Method,
			Expression: i.Expression,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func primaryKeyOf(constraints []catalog.Constraint) *PrimaryKey {
	for _, c := range constraints {
		if c.Kind == catalog.ConstraintPrimaryKey {
			return &PrimaryKey{Columns: append([]string{}, c.Columns...)}
		}
	}
	return nil
}

// buildShapes derives the row/insert/update/patch projections for a table
// or view entity, per SPEC_FULL.md §4.2 and §9 Open Question 2: each Shape
// carries its own Entity/Kind rather than depending on inflect.Registry.
func buildShapes(entityName string, fields []Field, isView bool) []Shape {
	row := Shape{Entity: entityName, Kind: ShapeRow}
	for _, f := range fields {
		if !f.Permissions.CanSelect {
			continue
		}
		rf := f
		rf.Optional = f.Nullable || f.HasDefault
		row.Fields = append(row.Fields, rf)
	}
	shapes := []Shape{row}
	if isView {
		return shapes
	}

	insert := Shape{Entity: entityName, Kind: ShapeInsert}
	for _, f := range fields {
		if !f.Permissions.CanInsert {
			continue
		}
		if f.IsGenerated {
			continue // DB-computed, never explicitly insertable
		}
		inf := f
		inf.Optional = f.HasDefault || f.Nullable || f.IsIdentity
		insert.Fields = append(insert.Fields, inf)
	}
	shapes = append(shapes, insert)

	for _, kind := range []ShapeKind{ShapeUpdate, ShapePatch} {
		s := Shape{Entity: entityName, Kind: kind}
		for _, f := range fields {
			if !f.Permissions.CanUpdate {
				continue
			}
			uf := f
			uf.Optional = true
			s.Fields = append(s.Fields, uf)
		}
		shapes = append(shapes, s)
	}
	return shapes
}

func (b *builder) buildTypeEntity(t catalog.Type) Entity {
	name := b.cfg.Inflection.ToPascal(b.cfg.Inflection.Singularize(t.TypName))
	tags := parseSmartTags(t.Comment)

	e := Entity{
		Name:       name,
		PgName:     t.TypName,
		SchemaName: t.SchemaName,
		Comment:    t.Comment,
		Tags:       tags,
	}
	switch t.TypType {
	case catalog.TypTypeEnum:
		e.Kind = EntityEnum
		e.EnumValues = append([]string{}, t.EnumValues...)
	case catalog.TypTypeDomain:
		e.Kind = EntityDomain
		base, _, _ := b.typeName(t.BaseTypeOID)
		e.BaseTypeName = base
		e.CheckExpressions = append([]string{}, t.CheckExpressions...)
	case catalog.TypTypeComposite:
		e.Kind = EntityComposite
		sortedFields := append([]catalog.Attribute{}, t.CompositeFields...)
		sort.Slice(sortedFields, func(i, j int) bool { return sortedFields[i].Num < sortedFields[j].Num })
		perms := Permissions{CanSelect: true}
		for _, attr := range sortedFields {
			e.CompositeFields = append(e.CompositeFields, b.buildField(attr, perms))
		}
	}
	return e
}

// attachRelations derives Relation edges from the snapshot's foreign keys,
// in constraint-name order, and attaches them to their source entity.
func (b *builder) attachRelations(ir *IR, fks []catalog.ForeignKey, classesByOID map[uint32]catalog.Class) {
	sorted := append([]catalog.ForeignKey{}, fks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, fk := range sorted {
		sourceName, ok := b.entityNameByClassOID[fk.SourceClassOID]
		if !ok {
			continue
		}
		targetName, ok := b.entityNameByClassOID[fk.TargetClassOID]
		if !ok {
			continue
		}
		entity, ok := ir.Entity(sourceName)
		if !ok {
			continue
		}
		rel := Relation{
			ConstraintName: fk.Name,
			TargetEntity:   targetName,
			Columns:        append([]catalog.ColumnPair{}, fk.Columns...),
			Cardinality:    CardinalityManyToOne,
			OnUpdate:       fk.OnUpdate,
			OnDelete:       fk.OnDelete,
		}
		if sourceClass, ok := classesByOID[fk.SourceClassOID]; ok && isUniqueColumnSet(sourceClass, fkLocalColumns(fk)) {
			rel.Cardinality = CardinalityOneToOne
		}
		entity.Relations = append(entity.Relations, rel)
	}
}

func fkLocalColumns(fk catalog.ForeignKey) []string {
	cols := make([]string, len(fk.Columns))
	for i, p := range fk.Columns {
		cols[i] = p.Local
	}
	return cols
}

// isUniqueColumnSet reports whether some unique, non-partial index (or the
// primary key) on the class covers exactly the given column set.
func isUniqueColumnSet(c catalog.Class, cols []string) bool {
	want := append([]string{}, cols...)
	sort.Strings(want)
	for _, idx := range c.Indexes {
		if !idx.Unique || idx.Partial {
			continue
		}
		got := append([]string{}, idx.Columns...)
		sort.Strings(got)
		if stringsEqual(got, want) {
			return true
		}
	}
	for _, c := range c.Constraints {
		if c.Kind != catalog.ConstraintUnique && c.Kind != catalog.ConstraintPrimaryKey {
			continue
		}
		got := append([]string{}, c.Columns...)
		sort.Strings(got)
		if stringsEqual(got, want) {
			return true
		}
	}
	return false
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
