package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/salon"
	"github.com/MrJamesThe3rd/salon/internal/store"
)

func TestKV(t *testing.T) {
	backends := map[string]func(t *testing.T) store.KV{
		"Memory": func(*testing.T) store.KV { return store.NewMemory() },
		"SQLite": func(t *testing.T) store.KV {
			kv, err := store.Open(context.Background(), store.Config{
				Driver: store.DriverSQLite,
				Path:   filepath.Join(t.TempDir(), "data", "salon.db"),
			})
			require.NoError(t, err)

			return kv
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := open(t)
			defer kv.Close()

			_, err := kv.Get(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, kv.Put(ctx, "k", []byte("one")))
			require.NoError(t, kv.Put(ctx, "k", []byte("two")))

			got, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two", string(got))
		})
	}
}

func TestOpen_SQLiteReopen(t *testing.T) {
	ctx := context.Background()
	cfg := store.Config{Driver: store.DriverSQLite, Path: filepath.Join(t.TempDir(), "salon.db")}

	kv, err := store.Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, store.DefaultKey, []byte(`{"clients":[]}`)))
	require.NoError(t, kv.Close())

	kv, err = store.Open(ctx, cfg)
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clients":[]}`, string(got))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := store.Open(context.Background(), store.Config{Driver: "csv"})
	assert.Error(t, err)
}

type failingKV struct{ store.KV }

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingKV) Put(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestDocumentStore_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		kv     store.KV
		check  func(t *testing.T, doc *salon.Document)
	}{
		{
			name: "NothingStored",
			check: func(t *testing.T, doc *salon.Document) {
				assert.Equal(t, salon.NewDocument(), doc)
			},
		},
		{
			name:   "Malformed",
			stored: `{"clients": [`,
			check: func(t *testing.T, doc *salon.Document) {
				assert.Equal(t, salon.NewDocument(), doc)
			},
		},
		{
			name: "ReadFailure",
			kv:   failingKV{},
			check: func(t *testing.T, doc *salon.Document) {
				assert.Equal(t, salon.NewDocument(), doc)
			},
		},
		{
			name:   "MissingCollections",
			stored: `{"clients": [{"id": "c1", "name": "Ana", "phone": "11"}]}`,
			check: func(t *testing.T, doc *salon.Document) {
				assert.Len(t, doc.Clients, 1)
				assert.Equal(t, salon.DefaultProcedures(), doc.Procedures)
				assert.NotNil(t, doc.Appointments)
				assert.Empty(t, doc.Appointments)
			},
		},
		{
			name:   "EmptyProceduresReseeded",
			stored: `{"clients": [], "procedures": [], "appointments": []}`,
			check: func(t *testing.T, doc *salon.Document) {
				assert.Len(t, doc.Procedures, len(salon.DefaultProcedures()))
			},
		},
		{
			name:   "StoredProceduresKept",
			stored: `{"clients": [], "procedures": [{"id": "p1", "name": "Corte", "category": "CORTE", "price": 60}], "appointments": []}`,
			check: func(t *testing.T, doc *salon.Document) {
				require.Len(t, doc.Procedures, 1)
				assert.Equal(t, salon.Money(6000), doc.Procedures[0].Price)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			kv := tt.kv
			if kv == nil {
				mem := store.NewMemory()
				if tt.stored != "" {
					require.NoError(t, mem.Put(ctx, store.DefaultKey, []byte(tt.stored)))
				}

				kv = mem
			}

			doc, err := store.NewDocumentStore(kv, "").Load(ctx)
			require.NoError(t, err)
			tt.check(t, doc)
		})
	}
}

func TestDocumentStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := store.NewDocumentStore(store.NewMemory(), "custom")

	doc := salon.NewDocument()
	doc.Clients = append(doc.Clients, salon.Client{ID: "c1", Name: "Ana", Phone: "11"})
	doc.Appointments = append(doc.Appointments, salon.Appointment{
		ID: "a1", ClientID: "c1", ClientName: "Ana", Date: "2024-06-01", Time: "14:00",
		ProcedureID: "1", ProcedureName: "Selagem Tradicional", Price: 15000, Status: salon.StatusScheduled,
	})

	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDocumentStore_SaveError(t *testing.T) {
	err := store.NewDocumentStore(failingKV{}, "").Save(context.Background(), salon.NewDocument())
	assert.ErrorContains(t, err, "connection refused")
}
