// pgsourcerer-demo wires a hand-built catalog.Snapshot through
// pgsourcerer.Generate with the reference plugins, to exercise the whole
// pipeline without a live PostgreSQL connection.
// Run: go run ./cmd/pgsourcerer-demo
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/pgsourcerer/pgsourcerer"
	"github.com/pgsourcerer/pgsourcerer/catalog"
	"github.com/pgsourcerer/pgsourcerer/plugins/kyselyquery"
	"github.com/pgsourcerer/pgsourcerer/plugins/tstypes"
	"github.com/pgsourcerer/pgsourcerer/plugins/zodschema"
)

// Postgres built-in type OIDs, per pg_type.
const (
	oidBool        = 16
	oidInt8        = 20
	oidInt4        = 23
	oidText        = 25
	oidTimestamptz = 1184
	oidUUID        = 2950
)

func main() {
	snapshot := demoSnapshot()

	cfg, err := pgsourcerer.NewConfig(
		pgsourcerer.WithSchemas("public"),
		pgsourcerer.WithRole("app"),
		pgsourcerer.WithPlugins(tstypes.New(), zodschema.New(), kyselyquery.New()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build config: %v\n", err)
		os.Exit(1)
	}

	out, err := pgsourcerer.Generate(context.Background(), pgsourcerer.Input{
		Snapshots: []catalog.Snapshot{snapshot},
		Config:    cfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	paths := make([]string, 0, len(out))
	for p := range out {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Printf("Generated %d files:\n", len(paths))
	for _, p := range paths {
		fmt.Printf("\n--- %s ---\n%s\n", p, out[p])
	}
}

// demoSnapshot describes two tables: users and posts, related by a single
// foreign key (posts.author_id -> users.id).
func demoSnapshot() catalog.Snapshot {
	types := []catalog.Type{
		{OID: oidBool, SchemaName: "pg_catalog", TypName: "bool", TypType: catalog.TypTypeBase},
		{OID: oidInt8, SchemaName: "pg_catalog", TypName: "int8", TypType: catalog.TypTypeBase},
		{OID: oidInt4, SchemaName: "pg_catalog", TypName: "int4", TypType: catalog.TypTypeBase},
		{OID: oidText, SchemaName: "pg_catalog", TypName: "text", TypType: catalog.TypTypeBase},
		{OID: oidTimestamptz, SchemaName: "pg_catalog", TypName: "timestamptz", TypType: catalog.TypTypeBase},
		{OID: oidUUID, SchemaName: "pg_catalog", TypName: "uuid", TypType: catalog.TypTypeBase},
	}

	users := catalog.Class{
		OID:        20001,
		SchemaName: "public",
		RelName:    "users",
		RelKind:    catalog.RelKindTable,
		Grants: []catalog.Grant{
			{Role: "app", Privilege: "SELECT"},
			{Role: "app", Privilege: "INSERT"},
			{Role: "app", Privilege: "UPDATE"},
		},
		Columns: []catalog.Attribute{
			{Name: "id", Num: 1, TypeOID: oidInt8, NotNull: true, HasDefault: true, Identity: "a"},
			{Name: "email", Num: 2, TypeOID: oidText, NotNull: true},
			{Name: "display_name", Num: 3, TypeOID: oidText, NotNull: false, Comment: "@description Shown in the UI"},
			{Name: "created_at", Num: 4, TypeOID: oidTimestamptz, NotNull: true, HasDefault: true},
		},
		Constraints: []catalog.Constraint{
			{Name: "users_pkey", Kind: catalog.ConstraintPrimaryKey, Columns: []string{"id"}},
		},
		Indexes: []catalog.Index{
			{Name: "users_pkey", Columns: []string{"id"}, Unique: true},
			{Name: "users_email_key", Columns: []string{"email"}, Unique: true},
		},
	}

	posts := catalog.Class{
		OID:        20002,
		SchemaName: "public",
		RelName:    "posts",
		RelKind:    catalog.RelKindTable,
		Grants: []catalog.Grant{
			{Role: "app", Privilege: "SELECT"},
			{Role: "app", Privilege: "INSERT"},
		},
		Columns: []catalog.Attribute{
			{Name: "id", Num: 1, TypeOID: oidInt8, NotNull: true, HasDefault: true, Identity: "a"},
			{Name: "author_id", Num: 2, TypeOID: oidInt8, NotNull: true},
			{Name: "title", Num: 3, TypeOID: oidText, NotNull: true},
			{Name: "published", Num: 4, TypeOID: oidBool, NotNull: true, HasDefault: true},
		},
		Constraints: []catalog.Constraint{
			{Name: "posts_pkey", Kind: catalog.ConstraintPrimaryKey, Columns: []string{"id"}},
		},
		Indexes: []catalog.Index{
			{Name: "posts_pkey", Columns: []string{"id"}, Unique: true},
		},
	}

	fks := []catalog.ForeignKey{
		{
			Name:           "posts_author_id_fkey",
			SourceClassOID: posts.OID,
			TargetClassOID: users.OID,
			Columns:        []catalog.ColumnPair{{Local: "author_id", Foreign: "id"}},
			OnUpdate:       "a",
			OnDelete:       "c",
		},
	}

	return catalog.Snapshot{
		Classes:     []catalog.Class{users, posts},
		Types:       types,
		ForeignKeys: fks,
	}
}
