package backup_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/backup"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type fakeDocs struct {
	doc        *salon.Document
	replaceErr error
	replaced   int
}

func (f *fakeDocs) Snapshot() *salon.Document { return f.doc.Clone() }

func (f *fakeDocs) Replace(_ context.Context, doc *salon.Document) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}

	f.replaced++
	f.doc = doc

	return nil
}

func sampleDocument() *salon.Document {
	doc := salon.NewDocument()
	doc.Clients = []salon.Client{
		{ID: "c1", Name: "Ana Souza", Phone: "11999990000", CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	doc.Appointments = []salon.Appointment{
		{ID: "a1", ClientID: "c1", ClientName: "Ana Souza", Date: "2024-05-02", Time: "10:00", ProcedureID: "1,10", ProcedureName: "Selagem Tradicional + Escova Modelada", Price: 19500, Status: salon.StatusCompleted},
		{ID: "a2", ClientID: "c1", ClientName: "Ana Souza", Date: "2024-06-01", Time: "14:00", ProcedureID: "3", ProcedureName: "Pintura Completa", Price: 12000, Status: salon.StatusScheduled, Notes: "trazer referência"},
	}

	return doc
}

func TestExportImport_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	require.NoError(t, backup.Export(&buf, doc))

	got, err := backup.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestExportImport_LargestPrice(t *testing.T) {
	doc := sampleDocument()
	doc.Procedures[0].Price = salon.MaxMoney

	var buf bytes.Buffer
	require.NoError(t, backup.Export(&buf, doc))

	got, err := backup.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, salon.MaxMoney, got.Procedures[0].Price)
}

func TestExport_EmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, backup.Export(&buf, &salon.Document{}))

	assert.Contains(t, buf.String(), `"clients": []`)
	assert.Contains(t, buf.String(), `"appointments": []`)

	got, err := backup.Import(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Clients)
}

func TestImport(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, doc *salon.Document)
	}{
		{
			name:    "MissingProcedures",
			input:   `{"clients": [], "appointments": []}`,
			wantErr: backup.ErrInvalidFormat,
		},
		{
			name:    "NullAppointments",
			input:   `{"clients": [], "procedures": [], "appointments": null}`,
			wantErr: backup.ErrInvalidFormat,
		},
		{
			name:    "NotJSON",
			input:   `clients,procedures`,
			wantErr: backup.ErrInvalidFormat,
		},
		{
			name:    "UnknownStatus",
			input:   `{"clients": [], "procedures": [], "appointments": [{"id": "a1", "status": "maybe"}]}`,
			wantErr: backup.ErrInvalidFormat,
		},
		{
			name: "LegacyLabels",
			input: `{"clients": [], "procedures": [{"id": "1", "name": "Corte", "category": "CORTE", "price": "R$ 1.250,50"}],
				"appointments": [{"id": "a1", "date": "2024-05-02", "time": "10:00", "price": 80, "status": "Realizado"}]}`,
			check: func(t *testing.T, doc *salon.Document) {
				require.Len(t, doc.Procedures, 1)
				assert.Equal(t, salon.Money(125050), doc.Procedures[0].Price)
				require.Len(t, doc.Appointments, 1)
				assert.Equal(t, salon.StatusCompleted, doc.Appointments[0].Status)
				assert.Equal(t, salon.Money(8000), doc.Appointments[0].Price)
			},
		},
		{
			name:    "PriceTooLarge",
			input:   `{"clients": [], "procedures": [{"id": "1", "name": "Corte", "category": "CORTE", "price": 92233720368547758.08}], "appointments": []}`,
			wantErr: backup.ErrInvalidFormat,
		},
		{
			name:  "ByteOrderMark",
			input: "\ufeff" + `{"clients": [{"id": "c1", "name": "Conceição", "phone": "11"}], "procedures": [], "appointments": []}`,
			check: func(t *testing.T, doc *salon.Document) {
				require.Len(t, doc.Clients, 1)
				assert.Equal(t, "Conceição", doc.Clients[0].Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := backup.Import(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)

				return
			}

			require.NoError(t, err)
			tt.check(t, doc)
		})
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "backup_salon_2024-06-01.json", backup.FileName(now))
}

func TestService_Restore(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		docs := &fakeDocs{doc: salon.NewDocument()}
		svc := backup.NewService(docs)

		var buf bytes.Buffer
		require.NoError(t, backup.Export(&buf, sampleDocument()))

		doc, err := svc.Restore(context.Background(), &buf)
		require.NoError(t, err)
		assert.Len(t, doc.Appointments, 2)
		assert.Equal(t, 1, docs.replaced)
		assert.Equal(t, sampleDocument(), docs.doc)
	})

	t.Run("InvalidLeavesDocument", func(t *testing.T) {
		original := sampleDocument()
		docs := &fakeDocs{doc: original}
		svc := backup.NewService(docs)

		_, err := svc.Restore(context.Background(), strings.NewReader(`{"clients": []}`))
		assert.ErrorIs(t, err, backup.ErrInvalidFormat)
		assert.Zero(t, docs.replaced)
		assert.Same(t, original, docs.doc)
	})

	t.Run("ReplaceError", func(t *testing.T) {
		docs := &fakeDocs{doc: salon.NewDocument(), replaceErr: errors.New("disk full")}
		svc := backup.NewService(docs)

		var buf bytes.Buffer
		require.NoError(t, backup.Export(&buf, sampleDocument()))

		_, err := svc.Restore(context.Background(), &buf)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestService_WriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	svc := backup.NewService(&fakeDocs{doc: sampleDocument()})

	path, err := svc.WriteFile(dir, time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup_salon_2024-06-01.json"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := backup.Import(f)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"backup_salon_2024-05-30.json",
		"backup_salon_2024-05-31.json",
		"backup_salon_2024-06-01.json",
		"backup_salon_2024-06-02.json",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	removed, err := backup.Prune(dir, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "backup_salon_2024-05-31.json"),
		filepath.Join(dir, "backup_salon_2024-05-30.json"),
	}, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}

	assert.ElementsMatch(t, []string{"backup_salon_2024-06-01.json", "backup_salon_2024-06-02.json", "notes.txt"}, left)

	removed, err = backup.Prune(dir, 0)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestScheduler_RunOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup_salon_2024-01-01.json"), []byte("{}"), 0o644))

	s, err := backup.NewScheduler(backup.NewService(&fakeDocs{doc: sampleDocument()}), backup.SchedulerConfig{
		Spec: "0 22 * * *",
		Dir:  dir,
		Keep: 1,
	})
	require.NoError(t, err)

	s.RunOnce(time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "backup_salon_2024-06-01.json", entries[0].Name())
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := backup.NewScheduler(backup.NewService(&fakeDocs{doc: salon.NewDocument()}), backup.SchedulerConfig{Spec: "every day"})
	assert.Error(t, err)
}
