package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Keyspaces(t *testing.T) {
	t.Parallel()

	t.Run("lookup before creation fails", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		r := New(nil)
		_, err := r.Keyspace("fake")
		req.ErrorIs(err, ErrKeyspaceNotFound)
	})

	t.Run("create then lookup", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		r := New(nil)
		r.CreateKeyspace("fake")

		ks, err := r.Keyspace("fake")
		req.NoError(err)
		req.Equal("fake", ks.Name())
	})

	t.Run("re-creation drops existing tables", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		r := New(nil)
		r.CreateKeyspace("fake")
		_, err := r.AddTable("fake", "users", userColumns())
		req.NoError(err)

		r.CreateKeyspace("fake")
		_, err = r.Table("fake", "users")
		req.ErrorIs(err, ErrTableNotFound)
	})
}

func TestRegistry_AddTable(t *testing.T) {
	t.Parallel()

	t.Run("keyspace must exist first", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		r := New(nil)
		_, err := r.AddTable("fake", "users", userColumns())
		req.ErrorIs(err, ErrKeyspaceNotFound)
	})

	t.Run("duplicate table name is rejected", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		r := New(nil)
		r.CreateKeyspace("fake")
		_, err := r.AddTable("fake", "users", userColumns())
		req.NoError(err)

		_, err = r.AddTable("fake", "users", userColumns())
		req.ErrorIs(err, ErrTableExists)
	})

	t.Run("same name in another keyspace is fine", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		r := New(nil)
		r.CreateKeyspace("fake")
		r.CreateKeyspace("other")
		_, err := r.AddTable("fake", "users", userColumns())
		req.NoError(err)
		_, err = r.AddTable("other", "users", userColumns())
		req.NoError(err)
	})
}

func TestRegistry_Flush(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	r := New(nil)
	r.CreateKeyspace("fake")
	tbl, err := r.AddTable("fake", "users", userColumns())
	req.NoError(err)
	req.NoError(tbl.Insert(map[string]any{"username": "ann", "company": 1}, false))

	r.Flush()

	// rows are gone but the schema survives: re-population needs no
	// re-declaration
	again, err := r.Table("fake", "users")
	req.NoError(err)
	req.Zero(again.Len())
	req.NoError(again.Insert(map[string]any{"username": "ann", "company": 1}, false))
	req.Equal(1, again.Len())
}

func TestRegistry_Reset(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	r := New(nil)
	r.CreateKeyspace("fake")
	_, err := r.AddTable("fake", "users", userColumns())
	req.NoError(err)

	r.Reset()

	_, err = r.Keyspace("fake")
	req.ErrorIs(err, ErrKeyspaceNotFound)
}

func TestKeyspace_Tables(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	ks := newKeyspace("fake")
	_, err := ks.AddTable("users", userColumns())
	req.NoError(err)

	req.Equal([]string{"users"}, ks.Tables())

	_, err = ks.Table("missing")
	req.ErrorIs(err, ErrTableNotFound)

	tbl, err := ks.Table("users")
	req.NoError(err)
	req.Equal("users", tbl.Name())
	req.Len(tbl.Columns(), len(userColumns()))
}
